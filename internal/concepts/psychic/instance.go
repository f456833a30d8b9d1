package psychic

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Entity types for rpg-toolkit
const (
	EntityTypeConcept  = "psychic_concept"
	EntityTypeInstance = "psychic_instance"
)

// Instance is a live psychic bound to a concept. Its state belongs to the
// host update loop and is not synchronized.
type Instance struct {
	id      string
	concept *Concept
	plugin  Plugin
	manager Manager
	mana    float64
	ticks   int64
}

func newInstance(concept *Concept) *Instance {
	return &Instance{concept: concept}
}

func (i *Instance) initialize(plugin Plugin, manager Manager) {
	i.plugin = plugin
	i.manager = manager
	i.id = manager.GenerateInstanceID()
	if err := manager.RegisterInstance(i); err != nil {
		panic(fmt.Sprintf("psychic concept %q: instance %s not registered: %v", i.concept.name, i.id, err))
	}
}

// ID returns the instance ID
func (i *Instance) ID() string {
	return i.id
}

// Concept returns the template the instance was created from
func (i *Instance) Concept() *Concept {
	return i.concept
}

// Plugin returns the plugin the instance runs in
func (i *Instance) Plugin() Plugin {
	return i.plugin
}

// Manager returns the manager the instance registered with
func (i *Instance) Manager() Manager {
	return i.manager
}

// Mana returns the current mana
func (i *Instance) Mana() float64 {
	return i.mana
}

// HealthBonus returns the extra health the instance grants its owner
func (i *Instance) HealthBonus() float64 {
	return i.concept.HealthBonus()
}

// Ticks returns how many times Tick has run
func (i *Instance) Ticks() int64 {
	return i.ticks
}

// Tick advances the instance one game tick, regenerating mana up to the
// concept maximum.
func (i *Instance) Tick() {
	i.ticks++
	i.mana = min(i.mana+i.concept.ManaRegenPerTick(), i.concept.Mana())
}

// ConsumeMana spends amount if enough mana is available
func (i *Instance) ConsumeMana(amount float64) bool {
	if amount < 0 || i.mana < amount {
		return false
	}
	i.mana -= amount
	return true
}

// GetID returns the instance ID
func (i *Instance) GetID() string {
	return i.id
}

// GetType returns the entity type for rpg-toolkit
func (i *Instance) GetType() string {
	return EntityTypeInstance
}

var (
	_ core.Entity = (*Instance)(nil)
	_ core.Entity = (*Concept)(nil)
)
