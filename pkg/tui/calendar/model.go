// Package calendarui hosts the Bubble Tea program for the month grid.
package calendarui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
	"tableflip.dev/calgrid/pkg/store"
	"tableflip.dev/calgrid/pkg/tui/help"
	"tableflip.dev/calgrid/pkg/tui/notelist"
	"tableflip.dev/calgrid/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
	modeNotes
)

var errServiceUnavailable = errors.New("service unavailable")

// Options configures a Model.
type Options struct {
	// WeekStart is the weekday shown in the first column.
	WeekStart time.Weekday
	// Today overrides the real-world date; zero means time.Now.
	Today calendar.Date
	// Start is the initially selected day; zero keeps today.
	Start calendar.Date
}

// Model is the Bubble Tea model for the interactive month grid.
type Model struct {
	ctx  context.Context
	svc  *app.Service
	ctrl *calendar.Controller

	mode   mode
	input  textinput.Model
	help   *help.Model
	notes  *notelist.Model
	status string
	theme  theme.Theme

	termWidth  int
	termHeight int
	clock      func() calendar.Date

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

type noteAddedMsg struct {
	day calendar.Date
	err error
}

type noteRemovedMsg struct {
	note *note.Note
	err  error
}

type tickMsg struct{}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// New constructs a Model over svc. A nil svc shows an unannotated grid and
// refuses to add notes.
func New(svc *app.Service, opts Options) *Model {
	copts := calendar.Options{
		Today:     opts.Today,
		WeekStart: opts.WeekStart,
		Layout:    charLayout(0, 0),
	}
	if svc != nil {
		copts.Annotator = svc
		copts.Listener = svc
	}
	ctrl := calendar.NewController(copts)
	if !opts.Start.IsZero() {
		ctrl.SelectDate(opts.Start)
	}

	ti := textinput.New()
	ti.Placeholder = "Note for the selected day"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock

	clock := calendar.Now
	if !opts.Today.IsZero() {
		fixed := opts.Today
		clock = func() calendar.Date { return fixed }
	}

	return &Model{
		ctx:   context.Background(),
		svc:   svc,
		ctrl:  ctrl,
		input: ti,
		theme: theme.Default(),
		clock: clock,
	}
}

// Controller exposes the grid controller driving the view.
func (m *Model) Controller() *calendar.Controller {
	return m.ctrl
}

// Init starts the store watch and the clock that keeps "today" current.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(startWatchCmd(m.ctx, m.svc), tickCmd())
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case noteAddedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
			break
		}
		m.ctrl.Refresh()
		m.reloadNotes()
		m.setStatus("Added note to " + msg.day.String())
	case noteRemovedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
			break
		}
		m.ctrl.Refresh()
		m.reloadNotes()
		m.setStatus("Removed note from " + msg.note.Date.String())
	case tickMsg:
		if today := m.clock(); today != m.ctrl.Today() {
			m.ctrl.SetToday(today)
		}
		cmds = append(cmds, tickCmd())
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.MouseClickMsg:
		if m.mode == modeNormal && msg.Button == tea.MouseLeft {
			m.ctrl.Click(calendar.Point{X: float64(msg.X), Y: float64(msg.Y)})
		}
	case tea.MouseWheelMsg:
		if m.mode == modeHelp && m.help != nil {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeInsert:
		return m.handleInsertKey(msg)
	case modeHelp:
		return m.handleHelpKey(msg)
	case modeNotes:
		return m.handleNotesKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	sel := m.ctrl.Selection()
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		return tea.Quit
	case "[":
		m.ctrl.Navigate(calendar.PrevMonth)
	case "]":
		m.ctrl.Navigate(calendar.NextMonth)
	case "{":
		m.ctrl.Navigate(calendar.PrevYear)
	case "}":
		m.ctrl.Navigate(calendar.NextYear)
	case "h", "left":
		m.ctrl.SelectDate(sel.AddDays(-1))
	case "l", "right":
		m.ctrl.SelectDate(sel.AddDays(1))
	case "k", "up":
		m.ctrl.SelectDate(sel.AddDays(-calendar.Columns))
	case "j", "down":
		m.ctrl.SelectDate(sel.AddDays(calendar.Columns))
	case "t":
		m.ctrl.SelectDate(m.ctrl.Today())
	case "a":
		if m.svc == nil {
			m.setStatus("ERR: " + errServiceUnavailable.Error())
			return nil
		}
		m.mode = modeInsert
		m.input.Reset()
		return m.input.Focus()
	case "n", "enter":
		if m.svc == nil {
			m.setStatus("ERR: " + errServiceUnavailable.Error())
			return nil
		}
		m.mode = modeNotes
		l := m.ctrl.Layout()
		m.notes = notelist.New(int(l.Width), m.notesHeight())
		m.reloadNotes()
	case "?":
		m.mode = modeHelp
		w, h := m.helpSize()
		m.help = help.New(w, h, m.theme.Modal.Frame)
	}
	return nil
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.exitInsert()
		if text == "" {
			m.setStatus("Empty note discarded")
			return nil
		}
		return m.addNoteCmd(m.ctrl.Selection(), text)
	case "esc":
		m.exitInsert()
		return nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
}

func (m *Model) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = modeNormal
		m.help = nil
		return nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return cmd
}

func (m *Model) handleNotesKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "n":
		m.mode = modeNormal
		m.notes = nil
		return nil
	case "ctrl+c":
		m.stopWatch()
		return tea.Quit
	case "x", "d", "delete":
		if n, ok := m.notes.Selected(); ok {
			return m.removeNoteCmd(n)
		}
		return nil
	case "a":
		m.mode = modeInsert
		m.notes = nil
		m.input.Reset()
		return m.input.Focus()
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return cmd
}

// reloadNotes refreshes the open notes list from the service.
func (m *Model) reloadNotes() {
	if m.notes == nil || m.svc == nil {
		return
	}
	day := m.ctrl.Selection()
	notes, err := m.svc.Notes(m.ctx, day)
	if err != nil {
		m.setStatus("ERR: " + err.Error())
		return
	}
	m.notes.SetNotes(day, notes)
}

func (m *Model) exitInsert() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) addNoteCmd(day calendar.Date, text string) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		_, err := svc.AddNote(ctx, day, text)
		return noteAddedMsg{day: day, err: err}
	}
}

func (m *Model) removeNoteCmd(n *note.Note) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	id := n.ID
	return func() tea.Msg {
		removed, err := svc.RemoveNote(ctx, id)
		return noteRemovedMsg{note: removed, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
}

// applySizes recomputes the grid layout for the terminal size and hands it
// to the controller so mouse hit testing matches what is drawn.
func (m *Model) applySizes() {
	m.ctrl.SetLayout(charLayout(m.termWidth, m.termHeight-footerHeight))
	if m.help != nil {
		m.help.SetSize(m.helpSize())
	}
	if m.notes != nil {
		m.notes.SetSize(int(m.ctrl.Layout().Width), m.notesHeight())
	}
}

// notesHeight is the space the grid rows occupy, which the notes list takes
// over while open.
func (m *Model) notesHeight() int {
	l := m.ctrl.Layout()
	return int(l.Height - l.TitleHeight - l.HeaderHeight)
}

func (m *Model) helpSize() (int, int) {
	w, h := m.termWidth, m.termHeight
	if w == 0 || h == 0 {
		l := m.ctrl.Layout()
		w, h = int(l.Width), int(l.Height)+footerHeight
	}
	return w, h - 1
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return tickMsg{} })
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if m.svc == nil {
		return
	}
	m.svc.HandleEvent(ev)
	m.ctrl.Refresh()
	m.reloadNotes()
	if ev.Type == store.EventDayChanged {
		m.setStatus(fmt.Sprintf("Notes changed on %s", ev.Day))
	}
}

// Run launches the interactive TUI program.
func Run(svc *app.Service, opts Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
