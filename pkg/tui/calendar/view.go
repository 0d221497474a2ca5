package calendarui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/calgrid/pkg/calendar"
)

const (
	footerHeight = 3

	defaultCellWidth  = 12
	defaultCellHeight = 3
	buttonWidth       = 3
)

var navLabels = map[calendar.Nav]string{
	calendar.PrevYear:  "<<",
	calendar.PrevMonth: "<",
	calendar.NextMonth: ">",
	calendar.NextYear:  ">>",
}

const (
	helpHint  = "[ ] month · { } year · hjkl move · t today · a add · n notes · ? help · q quit"
	notesHint = "↑↓ move · x delete · a add · esc back"
)

// charLayout sizes the grid in terminal cells for a width x height area. A
// zero dimension falls back to the default cell size.
func charLayout(width, height int) calendar.Layout {
	cw, ch := defaultCellWidth, defaultCellHeight
	if width > 0 {
		cw = clamp(width/calendar.Columns, 6, 18)
	}
	if height > 0 {
		ch = clamp((height-2)/calendar.Rows, 2, 6)
	}
	return calendar.Layout{
		Width:        float64(cw * calendar.Columns),
		Height:       float64(2 + ch*calendar.Rows),
		TitleHeight:  1,
		HeaderHeight: 1,
		ButtonWidth:  buttonWidth,
	}
}

// View renders the title bar, weekday header, grid and footer.
func (m *Model) View() string {
	if m.mode == modeHelp && m.help != nil {
		return m.help.View()
	}
	body := m.renderGrid()
	if m.mode == modeNotes && m.notes != nil {
		body = lipgloss.NewStyle().Height(m.notesHeight()).MaxHeight(m.notesHeight()).Render(m.notes.View())
	}
	sections := []string{
		m.renderTitle(),
		m.renderHeader(),
		body,
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderTitle() string {
	l := m.ctrl.Layout()
	width := int(l.Width)
	b := int(l.ButtonWidth)
	nav := func(n calendar.Nav) string {
		return m.theme.Grid.Nav.Render(lipgloss.PlaceHorizontal(b, lipgloss.Center, navLabels[n]))
	}
	label := lipgloss.PlaceHorizontal(max(width-4*b, 0), lipgloss.Center, m.ctrl.AnchorLabel())
	return nav(calendar.PrevYear) + nav(calendar.PrevMonth) +
		m.theme.Grid.Title.Render(label) +
		nav(calendar.NextMonth) + nav(calendar.NextYear)
}

func (m *Model) renderHeader() string {
	cw := int(m.ctrl.Layout().CellWidth())
	order := calendar.WeekdayOrder(m.ctrl.WeekStart())
	cols := make([]string, 0, len(order))
	for _, wd := range order {
		name := wd.String()
		if cw < 8 {
			name = name[:2]
		} else {
			name = name[:3]
		}
		cols = append(cols, m.theme.Grid.Header.Render(lipgloss.PlaceHorizontal(cw, lipgloss.Center, name)))
	}
	return strings.Join(cols, "")
}

func (m *Model) renderGrid() string {
	l := m.ctrl.Layout()
	cw, ch := int(l.CellWidth()), int(l.CellHeight())
	g := m.ctrl.Grid()
	rows := make([]string, 0, calendar.Rows)
	for r := 0; r < calendar.Rows; r++ {
		cells := make([]string, 0, calendar.Columns)
		for _, cell := range g.Row(r) {
			cells = append(cells, m.renderCell(cell, cw, ch))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCell(cell calendar.Cell, width, height int) string {
	lines := []string{fmt.Sprintf("%2d", cell.Date.Day)}
	if cell.Annotation != "" {
		for _, line := range strings.Split(cell.Annotation, "\n") {
			if len(lines) == height {
				break
			}
			lines = append(lines, " "+truncate.StringWithTail(line, uint(max(width-2, 1)), "…"))
		}
	}
	return m.theme.Grid.Cell(cell.Category).
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	width := int(m.ctrl.Layout().Width)
	sel := m.ctrl.Selection()
	summary := fmt.Sprintf("%s %s", sel.Weekday().String()[:3], sel)
	g := m.ctrl.Grid()
	if i, ok := g.IndexOf(sel); ok && g[i].Annotation != "" {
		summary += " · " + strings.ReplaceAll(g[i].Annotation, "\n", "; ")
	}
	lines := []string{m.theme.Footer.Notes.Render(truncate.StringWithTail(summary, uint(width), "…"))}

	switch m.mode {
	case modeInsert:
		lines = append(lines, m.theme.Modal.Title.Render("Add to "+sel.String()+": ")+m.theme.Modal.Body.Render(m.input.View()))
	default:
		lines = append(lines, m.theme.Footer.Status.Render(m.status))
	}
	hint := helpHint
	if m.mode == modeNotes {
		hint = notesHint
	}
	lines = append(lines, m.theme.Footer.Help.Render(truncate.StringWithTail(hint, uint(width), "…")))
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
