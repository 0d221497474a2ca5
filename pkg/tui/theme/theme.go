package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/calgrid/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Grid   GridTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// GridTheme styles the month grid. Cells holds one style per category.
type GridTheme struct {
	Title  lipgloss.Style
	Nav    lipgloss.Style
	Header lipgloss.Style
	Cells  map[calendar.Category]lipgloss.Style
}

// Cell returns the style for c, falling back to the Normal style.
func (g GridTheme) Cell(c calendar.Category) lipgloss.Style {
	if s, ok := g.Cells[c]; ok {
		return s
	}
	return g.Cells[calendar.Normal]
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Notes  lipgloss.Style
}

// ModalTheme styles centered modal overlays (note input, help).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Grid: GridTheme{
			Title:  lipgloss.NewStyle().Bold(true),
			Nav:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Cells: map[calendar.Category]lipgloss.Style{
				calendar.Normal:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
				calendar.Weekend:    lipgloss.NewStyle().Foreground(lipgloss.Color("216")),
				calendar.Today:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Underline(true),
				calendar.OutOfMonth: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
				calendar.Selected:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")).Bold(true),
			},
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Notes:  lipgloss.NewStyle(),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
