package psychic

import (
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/tooltip"
)

// Stat labels
const (
	LabelHealthBonus = "Health Bonus"
	LabelHealthRegen = "Health Regen"
	LabelMana        = "Mana"
	LabelManaRegen   = "Mana Regen"
)

// CommandRoot is the host command that owns book click actions
const CommandRoot = "psychics"

// SupplyCommand is the command a book entry runs to hand out an ability
func SupplyCommand(abilityName string) string {
	return CommandRoot + " supply " + abilityName
}

// RenderTooltip renders the concept: title, stat lines with regeneration per
// second, description and templates for ability tooltips to reference.
func (c *Concept) RenderTooltip() *tooltip.Document {
	c.mustBe(PhaseScalarBound, "RenderTooltip")

	st := c.stats
	healthRegen := st.HealthRegenPerTick * TicksPerSecond
	manaRegen := st.ManaRegenPerTick * TicksPerSecond

	return tooltip.NewBuilder().
		Title(st.DisplayName, entities.ColorGold, true).
		AddStat(entities.ColorRed, LabelHealthBonus, st.HealthBonus).
		AddStat(entities.ColorDarkRed, LabelHealthRegen, healthRegen).
		AddStat(entities.ColorAqua, LabelMana, st.Mana).
		AddStat(entities.ColorDarkAqua, LabelManaRegen, manaRegen).
		AddDescription(st.Description).
		AddTextTemplate(KeyDisplayName, st.DisplayName).
		AddTemplate(KeyHealthBonus, st.HealthBonus).
		AddTemplate(KeyHealthRegen, healthRegen).
		AddTemplate(KeyMana, st.Mana).
		AddTemplate(KeyManaRegen, manaRegen).
		Build()
}

// CreateTooltipBook builds the book handed to players: a header revealing
// the concept tooltip, then one clickable entry per ability.
func (c *Concept) CreateTooltipBook(stats tooltip.StatLookup) *tooltip.Book {
	c.mustBe(PhaseFullyBound, "CreateTooltipBook")

	displayName := c.stats.DisplayName
	components := []tooltip.Component{{
		Text:       displayName,
		Bold:       true,
		Underlined: true,
		Hover:      c.RenderTooltip(),
	}}

	for _, ability := range c.modules.abilities {
		components = append(components,
			tooltip.Component{
				Text:  "\n\n  - ",
				Color: entities.ColorReset,
				Bold:  true,
			},
			tooltip.Component{
				Text:       ability.DisplayName(),
				Bold:       true,
				Underlined: true,
				Hover:      ability.RenderTooltip(stats),
				Click:      &tooltip.ClickAction{Command: SupplyCommand(ability.Name())},
			},
		)
	}

	book := tooltip.NewBook(displayName, c.modules.manager.Plugin().Name())
	book.AddPage(components...)
	return book
}
