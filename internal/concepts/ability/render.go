package ability

import (
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/tooltip"
)

const ticksPerSecond = 20.0

func seconds(ticks int64) float64 {
	return float64(ticks) / ticksPerSecond
}

// RenderTooltip renders the ability. Only configured stats get a line.
// Damage is evaluated with stats; a nil lookup evaluates to zero.
func (c *Concept) RenderTooltip(stats tooltip.StatLookup) *tooltip.Document {
	var damage float64
	if stats != nil && !c.damage.IsZero() {
		damage = stats(c.damage)
	}

	b := tooltip.NewBuilder().Title(c.displayName, entities.ColorGold, true)
	if c.levelRequirement > 0 {
		b.AddStat(entities.ColorGreen, "Level Requirement", float64(c.levelRequirement))
	}
	if c.cooldownTicks > 0 {
		b.AddStatWithSuffix(entities.ColorAqua, "Cooldown", seconds(c.cooldownTicks), "s")
	}
	if c.cost > 0 {
		b.AddStat(entities.ColorDarkAqua, "Cost", c.cost)
	}
	if c.castingTicks > 0 {
		b.AddStatWithSuffix(entities.ColorBlue, "Casting Time", seconds(c.castingTicks), "s")
	}
	if c.rangeBlocks > 0 {
		b.AddStatWithSuffix(entities.ColorLightPurple, "Range", c.rangeBlocks, " blocks")
	}
	if c.durationTicks > 0 {
		b.AddStatWithSuffix(entities.ColorYellow, "Duration", seconds(c.durationTicks), "s")
	}
	if !c.damage.IsZero() {
		b.AddStatWithSuffix(entities.ColorRed, "Damage", damage, " ("+c.damage.String()+")")
	}

	return b.AddDescription(c.description).
		AddTextTemplate(KeyDisplayName, c.displayName).
		AddTemplate(KeyCooldownTicks, seconds(c.cooldownTicks)).
		AddTemplate(KeyCost, c.cost).
		AddTemplate(KeyCastingTicks, seconds(c.castingTicks)).
		AddTemplate(KeyRange, c.rangeBlocks).
		AddTemplate(KeyDurationTicks, seconds(c.durationTicks)).
		AddTemplate(KeyDamage, damage).
		Build()
}
