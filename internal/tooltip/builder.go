package tooltip

import (
	"github.com/KirkDiggler/psychics/internal/entities"
)

// Builder assembles a Document step by step
type Builder struct {
	doc Document
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Title sets the title line
func (b *Builder) Title(text string, color entities.Color, bold bool) *Builder {
	b.doc.Title = Span{Text: text, Color: color, Bold: bold}
	return b
}

// AddStat appends a stat line
func (b *Builder) AddStat(color entities.Color, label string, value float64) *Builder {
	return b.AddStatWithSuffix(color, label, value, "")
}

// AddStatWithSuffix appends a stat line with a unit suffix such as "s"
func (b *Builder) AddStatWithSuffix(color entities.Color, label string, value float64, suffix string) *Builder {
	b.doc.Stats = append(b.doc.Stats, Stat{Color: color, Label: label, Value: value, Suffix: suffix})
	return b
}

// AddDescription appends description lines verbatim
func (b *Builder) AddDescription(lines []string) *Builder {
	b.doc.Description = append(b.doc.Description, lines...)
	return b
}

// AddTemplate appends a numeric template
func (b *Builder) AddTemplate(key string, value float64) *Builder {
	return b.AddTextTemplate(key, FormatValue(value))
}

// AddTextTemplate appends a text template
func (b *Builder) AddTextTemplate(key, value string) *Builder {
	b.doc.Templates = append(b.doc.Templates, Template{Key: key, Value: value})
	return b
}

// Build returns a copy of the assembled document
func (b *Builder) Build() *Document {
	doc := Document{Title: b.doc.Title}
	doc.Stats = append([]Stat(nil), b.doc.Stats...)
	doc.Description = append([]string(nil), b.doc.Description...)
	doc.Templates = append([]Template(nil), b.doc.Templates...)
	return &doc
}
