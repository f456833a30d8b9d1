package tooltip

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/psychics/internal/entities"
)

// ANSIRenderer renders documents and books for a terminal
type ANSIRenderer struct {
	renderer *lipgloss.Renderer
}

// NewANSIRenderer creates a renderer that detects colour support from w
func NewANSIRenderer(w io.Writer) *ANSIRenderer {
	return &ANSIRenderer{renderer: lipgloss.NewRenderer(w)}
}

func (r *ANSIRenderer) style(color entities.Color, bold, underline bool) lipgloss.Style {
	st := r.renderer.NewStyle().Bold(bold).Underline(underline)
	if hex := color.Hex(); hex != "" {
		st = st.Foreground(lipgloss.Color(hex))
	}
	return st
}

// Document renders doc inside a rounded box
func (r *ANSIRenderer) Document(doc *Document) string {
	lines := make([]string, 0, 1+len(doc.Stats)+len(doc.Description))
	lines = append(lines, r.style(doc.Title.Color, doc.Title.Bold, false).Render(doc.Title.Text))
	for _, stat := range doc.Stats {
		lines = append(lines, r.style(stat.Color, false, false).Render(stat.Text()))
	}
	for _, line := range doc.Description {
		lines = append(lines, r.style(entities.ColorGray, false, false).Render(doc.Interpolate(line)))
	}

	box := r.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// Book renders every page. Hover documents are expanded beneath the
// component that owns them, click commands are shown in brackets.
func (r *ANSIRenderer) Book(book *Book) string {
	var sb strings.Builder
	sb.WriteString(r.style(entities.ColorGold, true, false).Render(book.Title))
	sb.WriteString(" by " + book.Author + "\n")

	hint := r.style(entities.ColorDarkGray, false, false)
	indent := r.renderer.NewStyle().PaddingLeft(4)

	for i, page := range book.Pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, c := range page {
			sb.WriteString(r.style(c.Color, c.Bold, c.Underlined).Render(c.Text))
			if c.Click != nil {
				sb.WriteString(" " + hint.Render("["+c.Click.Command+"]"))
			}
			if c.Hover != nil {
				sb.WriteString("\n" + indent.Render(r.Document(c.Hover)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
