package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Concept fixtures keyed by concept name
const (
	PyromancerYAML = `display-name: Pyromancer
health-bonus: 10
mana: 100
mana-regen: 0.1
mana-color: RED
description:
  - Fire magic
  - Costs up to {mana} mana
abilities:
  - name: fireball
    type: projectile
    display-name: Fireball
    cooldown-ticks: 40
    cost: 20
    range: 16
    damage:
      attack-damage: 2
  - name: ember
    display-name: Ember
    cost: 5
`

	TankYAML = `display-name: Tank
health-bonus: 99999
health-regen: 0.05
`

	// BrokenManaYAML fails binding
	BrokenManaYAML = `mana: -5
`

	// MisfireYAML binds but one ability fails its initialization hook
	MisfireYAML = `display-name: Misfire
mana: 10
abilities:
  - name: dud
    type: projectile
  - name: spark
    cost: 1
`
)

// ConceptFixtures returns the fixture documents keyed by concept name
func ConceptFixtures() map[string]string {
	return map[string]string{
		"pyromancer": PyromancerYAML,
		"tank":       TankYAML,
		"broken":     BrokenManaYAML,
		"misfire":    MisfireYAML,
	}
}

// WriteConceptDir writes each document to <dir>/<name>.yml and returns dir.
// A nil docs map writes the standard fixtures.
func WriteConceptDir(t *testing.T, docs map[string]string) string {
	t.Helper()

	if docs == nil {
		docs = ConceptFixtures()
	}

	dir := t.TempDir()
	for name, doc := range docs {
		path := filepath.Join(dir, name+".yml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600), "failed to write fixture %s", name)
	}
	return dir
}
