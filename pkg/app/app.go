package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/logging"
	"tableflip.dev/calgrid/pkg/note"
	"tableflip.dev/calgrid/pkg/store"
)

// ErrNoPersistence is returned by operations that need a store when none is
// configured.
var ErrNoPersistence = errors.New("app: no persistence configured")

// Service provides high-level operations for day notes. It is the calendar
// grid's collaborator: it answers annotation lookups from a per-month cache
// and records every selection change.
// It wraps persistence so UIs, CLIs and the MCP server share logic.
type Service struct {
	Persistence store.Persistence
	Log         *slog.Logger

	mu            sync.Mutex
	months        map[calendar.YearMonth]map[calendar.Date][]*note.Note
	selected      calendar.Date
	selectedNotes []*note.Note
}

// New returns a Service over p.
func New(p store.Persistence, log *slog.Logger) *Service {
	return &Service{Persistence: p, Log: log}
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}

// Contents implements calendar.Annotator. A nil Service or one without
// persistence annotates nothing.
func (s *Service) Contents(d calendar.Date) string {
	if s == nil || s.Persistence == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return note.Join(s.dayLocked(d))
}

// OnSelectionChanged implements calendar.SelectionListener. It stores the
// selection so the next session starts there and loads the day's notes.
// Failures are logged, never reported back to the grid.
func (s *Service) OnSelectionChanged(d calendar.Date) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.selected = d
	if s.Persistence != nil {
		s.selectedNotes = s.dayLocked(d)
	}
	s.mu.Unlock()

	if s.Persistence == nil {
		return
	}
	if err := s.Persistence.SaveSelection(d); err != nil {
		s.logger().Warn("save selection", "day", d, "err", err)
	}
}

// Selected returns the last selection reported to the service and its notes.
func (s *Service) Selected() (calendar.Date, []*note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, append([]*note.Note(nil), s.selectedNotes...)
}

// LastSelection returns the selection saved by a previous session.
func (s *Service) LastSelection() (calendar.Date, bool) {
	if s.Persistence == nil {
		return calendar.Date{}, false
	}
	return s.Persistence.LoadSelection()
}

// Notes lists the notes filed under d, bypassing the cache.
func (s *Service) Notes(ctx context.Context, d calendar.Date) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.List(ctx, d), nil
}

// MonthNotes lists every note in month m.
func (s *Service) MonthNotes(ctx context.Context, m calendar.YearMonth) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListMonth(ctx, m), nil
}

// AllNotes lists every stored note.
func (s *Service) AllNotes(ctx context.Context) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.ListAll(ctx), nil
}

// AddNote files text under d.
func (s *Service) AddNote(ctx context.Context, d calendar.Date, text string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("app: note text required")
	}
	n := note.New(d, text)
	if err := s.Persistence.Store(n); err != nil {
		return nil, err
	}
	s.Invalidate(d)
	s.logger().Info("added note", "day", d, "id", n.ID)
	return n, nil
}

// RemoveNote deletes the note with the given id.
func (s *Service) RemoveNote(ctx context.Context, id string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	n, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.Delete(n); err != nil {
		return nil, err
	}
	s.Invalidate(n.Date)
	s.logger().Info("removed note", "day", n.Date, "id", n.ID)
	return n, nil
}

// Invalidate drops the cached month containing d.
func (s *Service) Invalidate(d calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.months, d.YearMonth())
	if d == s.selected && s.Persistence != nil {
		s.selectedNotes = s.dayLocked(d)
	}
}

// InvalidateAll drops every cached month.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.months = nil
	if !s.selected.IsZero() && s.Persistence != nil {
		s.selectedNotes = s.dayLocked(s.selected)
	}
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// HandleEvent invalidates whatever a store event touched.
func (s *Service) HandleEvent(ev store.Event) {
	switch ev.Type {
	case store.EventDayChanged:
		s.Invalidate(ev.Day)
	default:
		s.InvalidateAll()
	}
}

// GridView is a rendered month: its title and 42 cells.
type GridView struct {
	Label     string        `json:"label"`
	Month     string        `json:"month"`
	Selected  calendar.Date `json:"selected"`
	Today     calendar.Date `json:"today"`
	WeekStart string        `json:"weekStart"`
	Cells     calendar.Grid `json:"cells"`
}

// View renders the grid for month m annotated with stored notes. The
// selection defaults to today when today is in m, else the first of m; a
// selection outside m re-anchors the grid to its month.
func (s *Service) View(m calendar.YearMonth, weekStart time.Weekday, today, selected calendar.Date) GridView {
	if selected.IsZero() {
		selected = m.First()
		if m.Contains(today) {
			selected = today
		}
	}
	c := calendar.NewController(calendar.Options{
		Today:     today,
		WeekStart: weekStart,
		Annotator: s,
	})
	c.SelectDate(selected)
	return GridView{
		Label:     c.AnchorLabel(),
		Month:     c.Anchor().String(),
		Selected:  c.Selection(),
		Today:     c.Today(),
		WeekStart: weekStart.String(),
		Cells:     c.Grid(),
	}
}

// dayLocked returns the cached notes for d, loading d's month on a miss.
func (s *Service) dayLocked(d calendar.Date) []*note.Note {
	m := d.YearMonth()
	days, ok := s.months[m]
	if !ok {
		days = make(map[calendar.Date][]*note.Note)
		for _, n := range s.Persistence.ListMonth(context.Background(), m) {
			days[n.Date] = append(days[n.Date], n)
		}
		if s.months == nil {
			s.months = make(map[calendar.YearMonth]map[calendar.Date][]*note.Note)
		}
		s.months[m] = days
		s.logger().Debug("loaded month", "month", m, "days", len(days))
	}
	return days[d]
}
