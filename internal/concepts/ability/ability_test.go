package ability_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/psychics/internal/concepts/ability"
	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/errors"
)

var _ psychic.AbilityConcept = (*ability.Concept)(nil)

const fireballYAML = `
name: fireball
type: projectile
display-name: Fireball
cooldown-ticks: 40
cost: 20
range: 16
damage:
  attack-damage: 2
  level: 0.5
description:
  - Deals {damage} damage
`

type AbilityTestSuite struct {
	suite.Suite
	registry *ability.Registry
}

func (s *AbilityTestSuite) SetupTest() {
	s.registry = ability.NewRegistry()
}

func (s *AbilityTestSuite) section(data string) *config.Section {
	section, err := config.ParseYAML([]byte(data))
	s.Require().NoError(err)
	return section
}

func (s *AbilityTestSuite) TestCreate_Fireball() {
	concept, err := s.registry.Create(s.section(fireballYAML))

	s.Require().NoError(err)
	s.Assert().Equal("fireball", concept.Name())
	s.Assert().Equal(ability.TypeProjectile, concept.Type())
	s.Assert().Equal("Fireball", concept.DisplayName())
	s.Assert().Equal(int64(40), concept.CooldownTicks())
	s.Assert().Equal(20.0, concept.Cost())
	s.Assert().Equal(16.0, concept.Range())
	s.Assert().Equal(entities.Statistic{
		{Attribute: entities.AttributeAttackDamage, Ratio: 2},
		{Attribute: entities.AttributeLevel, Ratio: 0.5},
	}, concept.Damage())
	s.Assert().Empty(concept.BindResult().Unknown)
}

func (s *AbilityTestSuite) TestCreate_DefaultsToGeneric() {
	concept, err := s.registry.Create(s.section("name: focus"))

	s.Require().NoError(err)
	s.Assert().Equal(ability.TypeGeneric, concept.Type())
	s.Assert().Equal("focus", concept.DisplayName())
	s.Assert().True(concept.Damage().IsZero())
	s.Require().NoError(concept.OnInitialize())
}

func (s *AbilityTestSuite) TestCreate_Errors() {
	testCases := []struct {
		name string
		data string
	}{
		{name: "missing name", data: "cost: 1"},
		{name: "name not a string", data: "name: 12"},
		{name: "unknown type", data: "name: a\ntype: laser"},
		{name: "type not a string", data: "name: a\ntype: [x]"},
		{name: "level requirement too high", data: "name: a\nlevel-requirement: 1000"},
		{name: "fractional cooldown", data: "name: a\ncooldown-ticks: 1.5"},
		{name: "negative cost", data: "name: a\ncost: -1"},
		{name: "damage not a mapping", data: "name: a\ndamage: 5"},
		{name: "unknown damage attribute", data: "name: a\ndamage:\n  luck: 1"},
		{name: "damage ratio not a number", data: "name: a\ndamage:\n  level: high"},
		{name: "damage attribute set twice", data: "name: a\ndamage:\n  attack-damage: 1\n  attack_damage: 2"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			concept, err := s.registry.Create(s.section(tc.data))

			s.Require().Error(err)
			s.Assert().Nil(concept)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *AbilityTestSuite) TestOnInitialize() {
	s.Run("projectile without range fails", func() {
		concept, err := s.registry.Create(s.section("name: dart\ntype: projectile"))
		s.Require().NoError(err)

		err = concept.OnInitialize()

		s.Require().Error(err)
		s.Assert().True(errors.IsFailedPrecondition(err))
		s.Assert().True(concept.Initialized())
	})

	s.Run("only once", func() {
		concept, err := s.registry.Create(s.section(fireballYAML))
		s.Require().NoError(err)

		s.Require().NoError(concept.OnInitialize())
		s.Assert().True(errors.IsFailedPrecondition(concept.OnInitialize()))
	})

	s.Run("custom hook", func() {
		var seen string
		s.Require().NoError(s.registry.Register("aura", func(c *ability.Concept) error {
			seen = c.Name()
			return nil
		}))
		concept, err := s.registry.Create(s.section("name: glow\ntype: aura"))
		s.Require().NoError(err)

		s.Require().NoError(concept.OnInitialize())
		s.Assert().Equal("glow", seen)
	})
}

func (s *AbilityTestSuite) TestRegister() {
	s.Assert().True(errors.IsAlreadyExists(s.registry.Register(ability.TypeGeneric, nil)))
	s.Assert().True(errors.IsInvalidArgument(s.registry.Register("", nil)))

	s.Require().NoError(s.registry.Register("aura", nil))
	s.Assert().Equal([]string{"aura", ability.TypeGeneric, ability.TypeProjectile}, s.registry.Types())

	_, err := s.registry.Create(s.section("name: a\ntype: laser"))
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), `unknown type "laser", known types: aura, generic, projectile`)
}

func (s *AbilityTestSuite) TestRenderTooltip() {
	concept, err := s.registry.Create(s.section(fireballYAML))
	s.Require().NoError(err)

	lookup := func(stat entities.Statistic) float64 {
		return stat.Evaluate(func(a entities.Attribute) float64 {
			if a == entities.AttributeAttackDamage {
				return 10
			}
			return 4
		})
	}

	doc := concept.RenderTooltip(lookup)

	s.Assert().Equal([]string{
		"Fireball",
		"Cooldown: 2.0s",
		"Cost: 20.0",
		"Range: 16.0 blocks",
		"Damage: 22.0 (2 attack-damage + 0.5 level)",
		"Deals 22.0 damage",
	}, doc.Lines())
	s.Assert().Equal(doc, concept.RenderTooltip(lookup))
}

func (s *AbilityTestSuite) TestRenderTooltip_NilLookup() {
	concept, err := s.registry.Create(s.section(fireballYAML))
	s.Require().NoError(err)

	doc := concept.RenderTooltip(nil)

	damage, ok := doc.Template(ability.KeyDamage)
	s.Require().True(ok)
	s.Assert().Equal("0.0", damage)
}

func (s *AbilityTestSuite) TestDefaultsWriteBack() {
	section := s.section("name: focus")
	concept, err := s.registry.Create(section)
	s.Require().NoError(err)

	changed, err := section.ApplyDefaults(concept.BindResult())
	s.Require().NoError(err)
	s.Assert().True(changed)

	v, ok := section.Get(ability.KeyDisplayName)
	s.Require().True(ok)
	s.Assert().Equal("focus", v)
	s.Assert().True(section.Has(ability.KeyCooldownTicks))

	changed, err = section.ApplyDefaults(concept.BindResult())
	s.Require().NoError(err)
	s.Assert().False(changed)
}

func TestAbilitySuite(t *testing.T) {
	suite.Run(t, new(AbilityTestSuite))
}
