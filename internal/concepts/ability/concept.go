// Package ability implements the configurable ability concepts a psychic is
// composed of.
package ability

import (
	"math"
	"slices"
	"strings"

	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/errors"
)

// Configuration keys
const (
	KeyName             = "name"
	KeyType             = "type"
	KeyDisplayName      = "display-name"
	KeyLevelRequirement = "level-requirement"
	KeyCooldownTicks    = "cooldown-ticks"
	KeyCost             = "cost"
	KeyCastingTicks     = "casting-ticks"
	KeyRange            = "range"
	KeyDurationTicks    = "duration-ticks"
	KeyDamage           = "damage"
	KeyDescription      = "description"
)

const (
	maxLevel = 999
	maxStat  = 32767.0
	maxTicks = math.MaxInt32
)

// Hook runs once when the owning psychic initializes its modules
type Hook func(c *Concept) error

// Concept is the template of one ability
type Concept struct {
	name             string
	kind             string
	displayName      string
	levelRequirement int64
	cooldownTicks    int64
	cost             float64
	castingTicks     int64
	rangeBlocks      float64
	durationTicks    int64
	damage           entities.Statistic
	description      []string

	hook        Hook
	bindResult  *config.Result
	initialized bool
}

// NewConcept returns an unbound ability of the given type. hook may be nil.
func NewConcept(kind string, hook Hook) *Concept {
	return &Concept{kind: kind, hook: hook}
}

func (c *Concept) fields() []config.Field {
	return []config.Field{
		config.NonEmptyString(KeyDisplayName, &c.displayName),
		config.Int(KeyLevelRequirement, &c.levelRequirement, 0, maxLevel),
		config.Int(KeyCooldownTicks, &c.cooldownTicks, 0, maxTicks),
		config.Float(KeyCost, &c.cost, 0, maxStat),
		config.Int(KeyCastingTicks, &c.castingTicks, 0, maxTicks),
		config.Float(KeyRange, &c.rangeBlocks, 0, maxStat),
		config.Int(KeyDurationTicks, &c.durationTicks, 0, maxTicks),
		config.Custom(KeyDamage, c.bindDamage, func() any { return c.damage.ToMap() }),
		config.StringList(KeyDescription, &c.description),
		config.Reserved(KeyName),
		config.Reserved(KeyType),
	}
}

func (c *Concept) bindDamage(raw any) error {
	values, ok := raw.(map[string]any)
	if !ok {
		return errors.InvalidArgument("must be a mapping of attribute to ratio")
	}
	stat, err := entities.StatisticFromMap(values)
	if err != nil {
		return err
	}
	c.damage = stat
	return nil
}

// Initialize binds the ability configuration. The display name defaults to name.
func (c *Concept) Initialize(name string, section *config.Section) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("ability name is required")
	}

	c.name = name
	c.displayName = name
	c.description = []string{}
	c.bindResult = config.Bind(section, c.fields()...)

	if err := c.bindResult.Err(); err != nil {
		return errors.Wrapf(err, "invalid ability %s", name).WithMeta("ability", name)
	}
	return nil
}

// OnInitialize runs the type hook. It may only be called once.
func (c *Concept) OnInitialize() error {
	if c.initialized {
		return errors.FailedPreconditionf("ability %s already initialized", c.name)
	}
	c.initialized = true

	if c.hook == nil {
		return nil
	}
	return c.hook(c)
}

// Initialized reports whether OnInitialize has run
func (c *Concept) Initialized() bool {
	return c.initialized
}

// Name returns the ability name, unique within its psychic concept
func (c *Concept) Name() string {
	return c.name
}

// Type returns the registry type the ability was created with
func (c *Concept) Type() string {
	return c.kind
}

// DisplayName returns the name shown in tooltips and books
func (c *Concept) DisplayName() string {
	return c.displayName
}

// LevelRequirement returns the player level needed to use the ability
func (c *Concept) LevelRequirement() int64 {
	return c.levelRequirement
}

// CooldownTicks returns the cooldown in server ticks
func (c *Concept) CooldownTicks() int64 {
	return c.cooldownTicks
}

// Cost returns the mana spent per use
func (c *Concept) Cost() float64 {
	return c.cost
}

// CastingTicks returns the casting time in server ticks
func (c *Concept) CastingTicks() int64 {
	return c.castingTicks
}

// Range returns the reach in blocks
func (c *Concept) Range() float64 {
	return c.rangeBlocks
}

// DurationTicks returns how long the effect lasts in server ticks
func (c *Concept) DurationTicks() int64 {
	return c.durationTicks
}

// Damage returns the damage statistic, empty when the ability deals none
func (c *Concept) Damage() entities.Statistic {
	return slices.Clone(c.damage)
}

// Description returns the description lines
func (c *Concept) Description() []string {
	return slices.Clone(c.description)
}

// BindResult returns the binding report of Initialize
func (c *Concept) BindResult() *config.Result {
	return c.bindResult
}
