// Package notelist wraps a bubbles list showing one day's notes.
package notelist

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
)

// Model is the list of notes for a single day.
type Model struct {
	list list.Model
	day  calendar.Date
}

// New constructs an empty list sized width x height.
func New(width, height int) *Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return &Model{list: l}
}

// SetNotes replaces the list contents with the notes of day.
func (m *Model) SetNotes(day calendar.Date, notes []*note.Note) tea.Cmd {
	m.day = day
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem{n: n})
	}
	cmd := m.list.SetItems(items)
	if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// Day is the day whose notes are listed.
func (m *Model) Day() calendar.Date {
	return m.day
}

// Len is the number of listed notes.
func (m *Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted note.
func (m *Model) Selected() (*note.Note, bool) {
	it, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return nil, false
	}
	return it.n, true
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Update forwards Bubble Tea messages to the list.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, or a placeholder when the day has no notes.
func (m *Model) View() string {
	if m.Len() == 0 {
		return "  No notes for " + m.day.String()
	}
	return m.list.View()
}

type noteItem struct {
	n *note.Note
}

func (i noteItem) Title() string {
	title, _, _ := strings.Cut(i.n.Text, "\n")
	return title
}

func (i noteItem) Description() string {
	desc := i.n.Created.Local().Format("15:04 Jan 2")
	if _, rest, ok := strings.Cut(i.n.Text, "\n"); ok {
		desc += " · " + strings.ReplaceAll(rest, "\n", " ")
	}
	return desc
}

func (i noteItem) FilterValue() string { return i.n.Text }
