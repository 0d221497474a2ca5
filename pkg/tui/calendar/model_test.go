package calendarui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/store"
)

var march13 = calendar.NewDate(2024, time.March, 13)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(store.NewConfig(t.TempDir(), "sunday", "error"))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return app.New(p, nil)
}

func TestKeysNavigateAndMoveSelection(t *testing.T) {
	m := New(nil, Options{Today: march13})
	c := m.Controller()

	steps := []struct {
		msg    tea.KeyPressMsg
		want   calendar.Date
		anchor string
	}{
		{key("]"), calendar.NewDate(2024, time.April, 13), "April 2024"},
		{key("["), march13, "March 2024"},
		{key("}"), calendar.NewDate(2025, time.March, 13), "March 2025"},
		{key("{"), march13, "March 2024"},
		{key("l"), calendar.NewDate(2024, time.March, 14), "March 2024"},
		{tea.KeyPressMsg{Code: tea.KeyLeft}, march13, "March 2024"},
		{key("j"), calendar.NewDate(2024, time.March, 20), "March 2024"},
		{tea.KeyPressMsg{Code: tea.KeyUp}, march13, "March 2024"},
		{key("k"), calendar.NewDate(2024, time.March, 6), "March 2024"},
		{key("h"), calendar.NewDate(2024, time.March, 5), "March 2024"},
		{key("t"), march13, "March 2024"},
	}
	for i, step := range steps {
		m.Update(step.msg)
		if got := c.Selection(); got != step.want {
			t.Fatalf("step %d (%s): expected selection %s, got %s", i, step.msg.String(), step.want, got)
		}
		if got := c.AnchorLabel(); got != step.anchor {
			t.Fatalf("step %d (%s): expected anchor %q, got %q", i, step.msg.String(), step.anchor, got)
		}
	}
}

func TestMovingPastMonthEdgeReanchors(t *testing.T) {
	m := New(nil, Options{Today: calendar.NewDate(2024, time.March, 31)})
	m.Update(key("l"))
	if got := m.Controller().AnchorLabel(); got != "April 2024" {
		t.Fatalf("expected grid to follow the selection into April, got %q", got)
	}
}

func TestMouseClickSelectsCellAndPressesButtons(t *testing.T) {
	m := New(nil, Options{Today: march13})
	c := m.Controller()

	// Default cells are 12 columns wide below a title row and a header row.
	m.Update(tea.MouseClickMsg{X: 13, Y: 2, Button: tea.MouseLeft})
	if got := c.Selection(); got != calendar.NewDate(2024, time.February, 26) {
		t.Fatalf("expected click to select Feb 26, got %s", got)
	}
	if got := c.AnchorLabel(); got != "February 2024" {
		t.Fatalf("expected out-of-month click to re-anchor, got %q", got)
	}

	// Next-month button sits two button widths in from the right edge.
	m.Update(tea.MouseClickMsg{X: 79, Y: 0, Button: tea.MouseLeft})
	if got := c.AnchorLabel(); got != "March 2024" {
		t.Fatalf("expected next-month button to advance, got %q", got)
	}

	m.Update(tea.MouseClickMsg{X: 1, Y: 0, Button: tea.MouseLeft})
	if got := c.AnchorLabel(); got != "March 2023" {
		t.Fatalf("expected previous-year button, got %q", got)
	}

	before := c.Selection()
	m.Update(tea.MouseClickMsg{X: 40, Y: 1, Button: tea.MouseLeft})
	if got := c.Selection(); got != before {
		t.Fatalf("header click should not change selection, got %s", got)
	}
	m.Update(tea.MouseClickMsg{X: 13, Y: 2, Button: tea.MouseRight})
	if got := c.Selection(); got != before {
		t.Fatalf("right click should not change selection, got %s", got)
	}
}

func TestWindowSizeResizesLayout(t *testing.T) {
	m := New(nil, Options{Today: march13})
	m.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	l := m.Controller().Layout()
	if l.Width != 70 || l.CellWidth() != 10 {
		t.Fatalf("unexpected width %v cell %v", l.Width, l.CellWidth())
	}
	if l.CellHeight() != 4 || l.Height != 26 {
		t.Fatalf("unexpected height %v cell %v", l.Height, l.CellHeight())
	}

	// The click now lands on the resized grid.
	m.Update(tea.MouseClickMsg{X: 65, Y: 2 + 4*2, Button: tea.MouseLeft})
	if got := m.Controller().Selection(); got != calendar.NewDate(2024, time.March, 16) {
		t.Fatalf("expected Mar 16 at row 2 col 6, got %s", got)
	}
}

func TestViewRendersTitleHeaderAndAnnotations(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddNote(context.Background(), calendar.NewDate(2024, time.March, 1), "rent"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	m := New(svc, Options{Today: march13, WeekStart: time.Monday})
	view := stripANSIString(m.View())
	lines := strings.Split(view, "\n")

	if !strings.Contains(lines[0], "March 2024") || !strings.HasPrefix(strings.TrimSpace(lines[0]), "<<") || !strings.HasSuffix(strings.TrimSpace(lines[0]), ">>") {
		t.Fatalf("unexpected title line %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "Mon") {
		t.Fatalf("expected Monday-first header, got %q", lines[1])
	}
	if !strings.Contains(view, "rent") {
		t.Fatalf("expected annotation in view; view=%q", view)
	}
	if !strings.Contains(view, "Wed 2024-03-13") {
		t.Fatalf("expected selected day in footer; view=%q", view)
	}
}

func TestAddNoteFromInput(t *testing.T) {
	svc := newTestService(t)
	m := New(svc, Options{Today: march13})

	m.Update(key("a"))
	if m.mode != modeInsert {
		t.Fatalf("expected insert mode")
	}
	m.input.SetValue("  dentist ")
	cmd := m.handleKeyPress(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected add note command")
	}
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after submit")
	}
	m.Update(cmd())

	if !strings.Contains(stripANSIString(m.View()), "dentist") {
		t.Fatalf("expected new note rendered")
	}
	if !strings.Contains(m.status, "Added note to 2024-03-13") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.Update(key("a"))
	m.input.SetValue("discard me")
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal || m.input.Value() != "" {
		t.Fatalf("expected escape to cancel input")
	}
}

func TestAddNoteWithoutServiceReportsError(t *testing.T) {
	m := New(nil, Options{Today: march13})
	m.Update(key("a"))
	if m.mode != modeNormal || !strings.Contains(m.status, errServiceUnavailable.Error()) {
		t.Fatalf("expected service error, mode=%v status=%q", m.mode, m.status)
	}
}

func TestWatchEventRefreshesGrid(t *testing.T) {
	dir := t.TempDir()
	load := func() *app.Service {
		p, err := store.Load(store.NewConfig(dir, "sunday", "error"))
		if err != nil {
			t.Fatalf("load store: %v", err)
		}
		return app.New(p, nil)
	}
	svc := load()
	m := New(svc, Options{Today: march13})

	day := calendar.NewDate(2024, time.March, 20)
	if _, err := load().AddNote(context.Background(), day, "standup"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if strings.Contains(stripANSIString(m.View()), "standup") {
		t.Fatalf("note should not appear before the watch event")
	}

	m.Update(watchEventMsg{event: store.Event{Type: store.EventDayChanged, Day: day}})
	if !strings.Contains(stripANSIString(m.View()), "standup") {
		t.Fatalf("expected note after watch event")
	}
}

func TestTickRefreshesToday(t *testing.T) {
	m := New(nil, Options{Today: march13})
	m.clock = func() calendar.Date { return calendar.NewDate(2024, time.March, 14) }
	m.Update(tickMsg{})
	c := m.Controller()
	if got := c.Today(); got != calendar.NewDate(2024, time.March, 14) {
		t.Fatalf("expected today to advance, got %s", got)
	}
	if c.Selection() != march13 {
		t.Fatalf("tick must not move the selection")
	}
}

func TestHelpToggle(t *testing.T) {
	m := New(nil, Options{Today: march13})
	m.Update(key("?"))
	if m.mode != modeHelp || m.help == nil {
		t.Fatalf("expected help mode")
	}
	if strings.TrimSpace(m.View()) == "" {
		t.Fatalf("expected help content")
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal {
		t.Fatalf("expected escape to close help")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestNotesListRemovesNote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, text := range []string{"dentist", "standup"} {
		if _, err := svc.AddNote(ctx, march13, text); err != nil {
			t.Fatalf("add note: %v", err)
		}
	}
	m := New(svc, Options{Today: march13})

	m.Update(key("n"))
	if m.mode != modeNotes || m.notes == nil || m.notes.Len() != 2 {
		t.Fatalf("expected notes list with two notes, mode=%v", m.mode)
	}
	view := stripANSIString(m.View())
	if !strings.Contains(view, "x delete") {
		t.Fatalf("expected notes hint; view=%q", view)
	}

	first, _ := m.notes.Selected()
	cmd := m.handleKeyPress(key("x"))
	if cmd == nil {
		t.Fatalf("expected remove command")
	}
	m.Update(cmd())
	if m.notes.Len() != 1 {
		t.Fatalf("expected one note left, got %d", m.notes.Len())
	}
	if !strings.Contains(m.status, "Removed note from 2024-03-13") {
		t.Fatalf("unexpected status %q", m.status)
	}
	left, err := svc.Notes(ctx, march13)
	if err != nil || len(left) != 1 || left[0].ID == first.ID {
		t.Fatalf("expected %s removed from the store, left %v (err %v)", first.ID, left, err)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal || m.notes != nil {
		t.Fatalf("expected escape to close the notes list")
	}
}

func TestNotesListWithoutServiceReportsError(t *testing.T) {
	m := New(nil, Options{Today: march13})
	m.Update(key("n"))
	if m.mode != modeNormal || !strings.Contains(m.status, errServiceUnavailable.Error()) {
		t.Fatalf("expected service error, mode=%v status=%q", m.mode, m.status)
	}
}
