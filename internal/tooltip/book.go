package tooltip

import (
	"strings"

	"github.com/KirkDiggler/psychics/internal/entities"
)

// GenerationOriginal marks a book written by the plugin itself
const GenerationOriginal = "ORIGINAL"

// ClickAction is a command the client runs when a component is clicked
type ClickAction struct {
	Command string
}

// Component is a piece of book text with optional hover and click behaviour
type Component struct {
	Text       string
	Color      entities.Color
	Bold       bool
	Underlined bool
	Hover      *Document
	Click      *ClickAction
}

// Page is an ordered list of components
type Page []Component

// Book is a written book item presenting a psychic and its abilities
type Book struct {
	Title      string
	Author     string
	Generation string
	Pages      []Page
}

// NewBook creates an empty original book
func NewBook(title, author string) *Book {
	return &Book{
		Title:      title,
		Author:     author,
		Generation: GenerationOriginal,
	}
}

// AddPage appends a page holding the given components
func (b *Book) AddPage(components ...Component) {
	page := make(Page, len(components))
	copy(page, components)
	b.Pages = append(b.Pages, page)
}

// Text returns the visible text of the page
func (p Page) Text() string {
	var sb strings.Builder
	for _, c := range p {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// String renders every page's visible text, pages separated by a blank line
func (b *Book) String() string {
	pages := make([]string, len(b.Pages))
	for i, p := range b.Pages {
		pages[i] = p.Text()
	}
	return strings.Join(pages, "\n\n")
}
