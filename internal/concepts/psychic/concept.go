// Package psychic implements the psychic concept: the validated template of an
// ability bundle, its tooltip and book presentation, and the live instances
// created from it.
//
// A Concept moves through three phases. Initialize binds the scalar
// configuration (PhaseScalarBound), InitializeModules attaches the manager
// and the ability concepts (PhaseFullyBound). From then on the concept is
// read-only and safe for concurrent use. Calling an operation before its
// phase, or creating instances after the manager retired the concept, is a
// programming error and panics.
package psychic

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/errors"
)

// Configuration keys
const (
	KeyDisplayName = "display-name"
	KeyHealthBonus = "health-bonus"
	KeyHealthRegen = "health-regen"
	KeyMana        = "mana"
	KeyManaRegen   = "mana-regen"
	KeyManaColor   = "mana-color"
	KeyDescription = "description"
	KeyAbilities   = "abilities"
)

const (
	// MaxStat is the upper bound of every configurable stat
	MaxStat = 32767.0
	// HealthBaseline is the base health every player has without a psychic
	HealthBaseline = 20.0
	// DefaultMaxHealth is the server health cap used when the host does not configure one
	DefaultMaxHealth = 2028.0
	// TicksPerSecond converts per-tick regeneration to per-second values
	TicksPerSecond = 20.0
)

// Phase is the initialization state of a Concept
type Phase int

// Phases
const (
	PhaseUnbound Phase = iota
	PhaseScalarBound
	PhaseFullyBound
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseUnbound:
		return "unbound"
	case PhaseScalarBound:
		return "scalar-bound"
	case PhaseFullyBound:
		return "fully-bound"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Settings are the host engine settings consulted during Initialize
type Settings struct {
	// MaxHealth is the server-wide maximum health attribute
	MaxHealth float64
}

// DefaultSettings returns the settings of an unconfigured server
func DefaultSettings() Settings {
	return Settings{MaxHealth: DefaultMaxHealth}
}

// HealthBonusCeiling is the largest health bonus a psychic may grant
func (s Settings) HealthBonusCeiling() float64 {
	maxHealth := s.MaxHealth
	if maxHealth <= 0 {
		maxHealth = DefaultMaxHealth
	}
	return max(0, maxHealth-HealthBaseline)
}

// Stats are the scalar values bound from configuration
type Stats struct {
	DisplayName        string
	HealthBonus        float64
	HealthRegenPerTick float64
	Mana               float64
	ManaRegenPerTick   float64
	ManaColor          entities.BarColor
	Description        []string
}

func (st *Stats) fields() []config.Field {
	return []config.Field{
		config.NonEmptyString(KeyDisplayName, &st.DisplayName),
		config.Float(KeyHealthBonus, &st.HealthBonus, 0, math.MaxFloat64),
		config.Float(KeyHealthRegen, &st.HealthRegenPerTick, 0, MaxStat),
		config.Float(KeyMana, &st.Mana, 0, MaxStat),
		config.Float(KeyManaRegen, &st.ManaRegenPerTick, 0, MaxStat),
		config.Enum(KeyManaColor, &st.ManaColor, entities.ParseBarColor),
		config.StringList(KeyDescription, &st.Description),
		config.Reserved(KeyAbilities),
	}
}

type modules struct {
	manager   Manager
	abilities []AbilityConcept
}

// Concept is the template of a psychic
type Concept struct {
	phase      Phase
	name       string
	stats      Stats
	bindResult *config.Result
	modules    *modules
	retired    atomic.Bool
}

// NewConcept returns an unbound concept
func NewConcept() *Concept {
	return &Concept{}
}

// Phase returns the current phase
func (c *Concept) Phase() Phase {
	return c.phase
}

func (c *Concept) mustBe(p Phase, op string) {
	if c.phase < p {
		panic(fmt.Sprintf("psychic concept %q: %s requires phase %s, concept is %s", c.name, op, p, c.phase))
	}
}

// Initialize binds the scalar configuration. The display name defaults to
// name. The health bonus is clamped to the server ceiling after binding,
// whether or not binding succeeded. On error the concept stays unbound and
// must be discarded.
func (c *Concept) Initialize(name string, section *config.Section, settings Settings) error {
	if c.phase != PhaseUnbound {
		panic(fmt.Sprintf("psychic concept %q: Initialize called in phase %s", c.name, c.phase))
	}
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("psychic concept name is required")
	}

	st := Stats{
		DisplayName: name,
		ManaColor:   entities.DefaultManaColor,
		Description: []string{},
	}
	result := config.Bind(section, st.fields()...)

	if ceiling := settings.HealthBonusCeiling(); st.HealthBonus > ceiling {
		st.HealthBonus = ceiling
	}

	c.name = name
	c.stats = st
	c.bindResult = result

	if err := result.Err(); err != nil {
		return errors.Wrapf(err, "invalid psychic concept %s", name).WithMeta("concept", name)
	}

	c.phase = PhaseScalarBound
	return nil
}

// ModuleResult is the outcome of one ability's OnInitialize
type ModuleResult struct {
	Ability AbilityConcept
	Err     error
}

// OK reports whether the ability initialized cleanly
func (r ModuleResult) OK() bool {
	return r.Err == nil
}

// InitializeModules attaches the manager and a copy of abilities, then calls
// every ability's OnInitialize once. A failing or panicking ability does not
// stop the others; each outcome is returned in ability order.
func (c *Concept) InitializeModules(manager Manager, abilities []AbilityConcept) []ModuleResult {
	if c.phase != PhaseScalarBound {
		panic(fmt.Sprintf("psychic concept %q: InitializeModules called in phase %s", c.name, c.phase))
	}
	if manager == nil {
		panic(fmt.Sprintf("psychic concept %q: InitializeModules requires a manager", c.name))
	}

	c.modules = &modules{
		manager:   manager,
		abilities: slices.Clone(abilities),
	}
	c.phase = PhaseFullyBound

	results := make([]ModuleResult, len(c.modules.abilities))
	for i, ability := range c.modules.abilities {
		results[i] = ModuleResult{Ability: ability, Err: initializeAbility(ability)}
	}
	return results
}

func initializeAbility(ability AbilityConcept) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internalf("ability %s panicked during initialization: %v", ability.Name(), r)
		}
	}()

	if err := ability.OnInitialize(); err != nil {
		return errors.Wrapf(err, "ability %s failed to initialize", ability.Name())
	}
	return nil
}

// Stats returns a copy of the bound values. Unlike the accessors it works in
// any phase, so the values left by a failed Initialize can be inspected.
func (c *Concept) Stats() Stats {
	st := c.stats
	st.Description = slices.Clone(c.stats.Description)
	return st
}

// BindResult returns the binding report of the last Initialize call
func (c *Concept) BindResult() *config.Result {
	return c.bindResult
}

// Name returns the unique concept key
func (c *Concept) Name() string {
	c.mustBe(PhaseScalarBound, "Name")
	return c.name
}

// DisplayName returns the configured display name
func (c *Concept) DisplayName() string {
	c.mustBe(PhaseScalarBound, "DisplayName")
	return c.stats.DisplayName
}

// Description returns the description lines
func (c *Concept) Description() []string {
	c.mustBe(PhaseScalarBound, "Description")
	return slices.Clone(c.stats.Description)
}

// HealthBonus returns the extra health granted, already clamped
func (c *Concept) HealthBonus() float64 {
	c.mustBe(PhaseScalarBound, "HealthBonus")
	return c.stats.HealthBonus
}

// HealthRegenPerTick returns the health regenerated every tick
func (c *Concept) HealthRegenPerTick() float64 {
	c.mustBe(PhaseScalarBound, "HealthRegenPerTick")
	return c.stats.HealthRegenPerTick
}

// Mana returns the maximum mana
func (c *Concept) Mana() float64 {
	c.mustBe(PhaseScalarBound, "Mana")
	return c.stats.Mana
}

// ManaRegenPerTick returns the mana regenerated every tick
func (c *Concept) ManaRegenPerTick() float64 {
	c.mustBe(PhaseScalarBound, "ManaRegenPerTick")
	return c.stats.ManaRegenPerTick
}

// ManaColor returns the mana bar colour
func (c *Concept) ManaColor() entities.BarColor {
	c.mustBe(PhaseScalarBound, "ManaColor")
	return c.stats.ManaColor
}

// Manager returns the owning manager
func (c *Concept) Manager() Manager {
	c.mustBe(PhaseFullyBound, "Manager")
	return c.modules.manager
}

// AbilityConcepts returns the ability concepts in configured order
func (c *Concept) AbilityConcepts() []AbilityConcept {
	c.mustBe(PhaseFullyBound, "AbilityConcepts")
	return slices.Clone(c.modules.abilities)
}

// CreateInstance spawns a live instance. The instance initializes itself with
// the manager's plugin and registers with the manager. It panics once the
// concept is retired or the manager refuses the registration.
func (c *Concept) CreateInstance() *Instance {
	c.mustBe(PhaseFullyBound, "CreateInstance")
	if c.retired.Load() {
		panic(fmt.Sprintf("psychic concept %q: CreateInstance called after the concept was retired", c.name))
	}

	instance := newInstance(c)
	instance.initialize(c.modules.manager.Plugin(), c.modules.manager)
	return instance
}

// Retire marks the concept as torn down together with its manager.
// CreateInstance panics afterwards.
func (c *Concept) Retire() {
	c.retired.Store(true)
}

// Retired reports whether Retire was called
func (c *Concept) Retired() bool {
	return c.retired.Load()
}

// GetID returns the concept name
func (c *Concept) GetID() string {
	return c.name
}

// GetType returns the entity type for rpg-toolkit
func (c *Concept) GetType() string {
	return EntityTypeConcept
}
