package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Attribute is a property of the player holding a psychic
type Attribute string

// Attributes, in display order
const (
	AttributeAttackDamage Attribute = "attack-damage"
	AttributeLevel        Attribute = "level"
	AttributeDefense      Attribute = "defense"
	AttributeHealth       Attribute = "health"
	AttributeMana         Attribute = "mana"
)

// Attributes lists every attribute in display order
func Attributes() []Attribute {
	return []Attribute{
		AttributeAttackDamage,
		AttributeLevel,
		AttributeDefense,
		AttributeHealth,
		AttributeMana,
	}
}

// ParseAttribute resolves an attribute key. Underscores and case are ignored.
func ParseAttribute(key string) (Attribute, error) {
	want := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	for _, a := range Attributes() {
		if string(a) == want {
			return a, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown attribute %q", key)
}

// Ratio scales one attribute inside a statistic
type Ratio struct {
	Attribute Attribute
	Ratio     float64
}

// Statistic is a weighted sum of attributes, e.g. damage = 1.5 x attack-damage + 0.2 x level.
// Ratios are kept in attribute display order.
type Statistic []Ratio

// StatisticFromMap builds a statistic from a config map of attribute -> ratio.
// Two keys naming the same attribute, such as attack-damage and
// attack_damage, are rejected.
func StatisticFromMap(values map[string]any) (Statistic, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ratios := make(map[Attribute]float64, len(values))
	sources := make(map[Attribute]string, len(values))
	for _, key := range keys {
		raw := values[key]
		attr, err := ParseAttribute(key)
		if err != nil {
			return nil, err
		}
		if prev, ok := sources[attr]; ok {
			return nil, errors.InvalidArgumentf("keys %q and %q both set %s", prev, key, attr)
		}
		sources[attr] = key

		var ratio float64
		switch v := raw.(type) {
		case int:
			ratio = float64(v)
		case int64:
			ratio = float64(v)
		case float64:
			ratio = v
		default:
			return nil, errors.InvalidArgumentf("ratio for %s must be a number, got %T", key, raw)
		}
		ratios[attr] = ratio
	}

	stat := make(Statistic, 0, len(ratios))
	for _, attr := range Attributes() {
		if ratio, ok := ratios[attr]; ok {
			stat = append(stat, Ratio{Attribute: attr, Ratio: ratio})
		}
	}
	return stat, nil
}

// IsZero reports whether the statistic has no ratios
func (s Statistic) IsZero() bool {
	return len(s) == 0
}

// Evaluate computes the statistic from the given attribute values
func (s Statistic) Evaluate(attribute func(Attribute) float64) float64 {
	var total float64
	for _, r := range s {
		total += attribute(r.Attribute) * r.Ratio
	}
	return total
}

// ToMap converts the statistic back to its config representation
func (s Statistic) ToMap() map[string]any {
	out := make(map[string]any, len(s))
	for _, r := range s {
		out[string(r.Attribute)] = r.Ratio
	}
	return out
}

// String renders the statistic as "1.5 attack-damage + 0.2 level"
func (s Statistic) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = fmt.Sprintf("%s %s", strconv.FormatFloat(r.Ratio, 'f', -1, 64), r.Attribute)
	}
	return strings.Join(parts, " + ")
}
