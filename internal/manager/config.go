package manager

import (
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/psychics/internal/concepts/ability"
	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	"github.com/KirkDiggler/psychics/internal/errors"
	"github.com/KirkDiggler/psychics/internal/pkg/clock"
	"github.com/KirkDiggler/psychics/internal/pkg/idgen"
	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
)

// DefaultFetchConcurrency bounds concurrent source reads during Load
const DefaultFetchConcurrency = 8

// Config contains the dependencies of a Manager
type Config struct {
	Plugin      psychic.Plugin
	Source      conceptconfig.Repository
	Abilities   *ability.Registry
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// Settings defaults to psychic.DefaultSettings when MaxHealth is zero
	Settings psychic.Settings
	// FetchConcurrency defaults to DefaultFetchConcurrency
	FetchConcurrency int
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Plugin == nil {
		vb.RequiredField("plugin")
	}
	if cfg.Source == nil {
		vb.RequiredField("source")
	}
	if cfg.Abilities == nil {
		vb.RequiredField("abilities")
	}
	if cfg.EventBus == nil {
		vb.RequiredField("event_bus")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("id_generator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("clock")
	}
	if cfg.Settings.MaxHealth < 0 {
		vb.InvalidField("settings.max_health", "must not be negative")
	}
	if cfg.FetchConcurrency < 0 {
		vb.InvalidField("fetch_concurrency", "must not be negative")
	}
	return vb.Build()
}

type plugin struct {
	name string
}

// Name returns the plugin name
func (p *plugin) Name() string { return p.name }

// NewPlugin returns a plugin handle with the given name
func NewPlugin(name string) psychic.Plugin {
	return &plugin{name: name}
}
