package psychic

//go:generate mockgen -destination=mock/mock_psychic.go -package=psychicmock github.com/KirkDiggler/psychics/internal/concepts/psychic AbilityConcept,Manager,Plugin

import (
	"github.com/KirkDiggler/psychics/internal/tooltip"
)

// Plugin is the host plugin handle passed to every instance
type Plugin interface {
	Name() string
}

// Manager owns concepts and the instances spawned from them.
// A concept keeps a back reference to its manager but never outlives it.
type Manager interface {
	// Plugin returns the execution context handed to new instances
	Plugin() Plugin
	// GenerateInstanceID returns a fresh unique instance ID
	GenerateInstanceID() string
	// RegisterInstance records a newly initialized instance. It fails once
	// the manager has been closed.
	RegisterInstance(instance *Instance) error
}

// AbilityConcept is the template of one ability inside a psychic
type AbilityConcept interface {
	Name() string
	DisplayName() string
	// OnInitialize is called exactly once, after the owning psychic binds its modules
	OnInitialize() error
	// RenderTooltip renders the ability, evaluating statistics with stats
	RenderTooltip(stats tooltip.StatLookup) *tooltip.Document
}
