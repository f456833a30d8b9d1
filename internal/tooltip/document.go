// Package tooltip holds the styled documents shown when a player inspects a
// psychic or an ability, and the book that lists them.
//
// Documents are plain data. Rendering to text happens in String (plain) or
// ANSIRenderer (terminal colours); neither keeps state, so the same document
// always renders to the same output.
package tooltip

import (
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/psychics/internal/entities"
)

// StatLookup resolves a statistic for the player viewing the tooltip
type StatLookup func(entities.Statistic) float64

// Span is a run of styled text
type Span struct {
	Text  string
	Color entities.Color
	Bold  bool
}

// Stat is one coloured "label: value" line
type Stat struct {
	Color  entities.Color
	Label  string
	Value  float64
	Suffix string
}

// Text renders the stat line without styling
func (s Stat) Text() string {
	return s.Label + ": " + FormatValue(s.Value) + s.Suffix
}

// Template is a named value other text can interpolate as {key}
type Template struct {
	Key   string
	Value string
}

// Document is a rendered tooltip
type Document struct {
	Title       Span
	Stats       []Stat
	Description []string
	Templates   []Template
}

// Template returns the value of the named template
func (d *Document) Template(key string) (string, bool) {
	for _, t := range d.Templates {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// Interpolate replaces every {key} in text with the matching template value.
// Unknown keys are left as they are.
func (d *Document) Interpolate(text string) string {
	if len(d.Templates) == 0 || !strings.Contains(text, "{") {
		return text
	}
	pairs := make([]string, 0, len(d.Templates)*2)
	for _, t := range d.Templates {
		pairs = append(pairs, "{"+t.Key+"}", t.Value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Lines returns the document as unstyled lines: title, stats, description
func (d *Document) Lines() []string {
	lines := make([]string, 0, 1+len(d.Stats)+len(d.Description))
	lines = append(lines, d.Title.Text)
	for _, stat := range d.Stats {
		lines = append(lines, stat.Text())
	}
	for _, line := range d.Description {
		lines = append(lines, d.Interpolate(line))
	}
	return lines
}

// String renders the document without styling
func (d *Document) String() string {
	return strings.Join(d.Lines(), "\n")
}

// valueScale rounds displayed values to four decimal places, dropping float
// noise such as 0.25000000000000006.
const valueScale = 1e4

// FormatValue formats stat and template numbers with as many decimals as
// the value needs and at least one, so 10 renders as "10.0" and 0.25 as
// "0.25".
func FormatValue(v float64) string {
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) < 1e12 {
		v = math.Round(v*valueScale) / valueScale
	}
	if v == 0 {
		v = 0 // -0
	}

	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".IN") {
		out += ".0"
	}
	return out
}
