// Package mcp provides the Model Context Protocol server integration for calgrid.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
	"tableflip.dev/calgrid/pkg/store"
)

// Service coordinates the operations shared by the MCP tools and resources.
type Service struct {
	App       *app.Service
	WeekStart time.Weekday
	// Today defaults to calendar.Now.
	Today func() calendar.Date
}

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Text       string `json:"text"`
	CreatedISO string `json:"created"`
}

// GridOptions selects which month to render and how.
type GridOptions struct {
	Month     string
	Selected  string
	WeekStart string
}

// NewService builds a service over p.
func NewService(p store.Persistence, weekStart time.Weekday) *Service {
	return &Service{App: app.New(p, nil), WeekStart: weekStart}
}

func (s *Service) today() calendar.Date {
	if s.Today == nil {
		return calendar.Now()
	}
	return s.Today()
}

// Grid renders a month. An empty month means the selected day's month, or
// today's when nothing is selected.
func (s *Service) Grid(_ context.Context, opts GridOptions) (app.GridView, error) {
	if s.App == nil {
		return app.GridView{}, app.ErrNoPersistence
	}
	today := s.today()

	var selected calendar.Date
	if v := strings.TrimSpace(opts.Selected); v != "" {
		d, err := calendar.ParseDate(v)
		if err != nil {
			return app.GridView{}, fmt.Errorf("invalid selected date: %w", err)
		}
		selected = d
	}

	month := today.YearMonth()
	if !selected.IsZero() {
		month = selected.YearMonth()
	}
	if v := strings.TrimSpace(opts.Month); v != "" {
		m, err := calendar.ParseYearMonth(v)
		if err != nil {
			return app.GridView{}, fmt.Errorf("invalid month: %w", err)
		}
		if !selected.IsZero() && !m.Contains(selected) {
			return app.GridView{}, errors.New("selected date must fall inside month")
		}
		month = m
	}

	weekStart := s.WeekStart
	if v := strings.TrimSpace(opts.WeekStart); v != "" {
		ws, ok := calendar.ParseWeekday(v)
		if !ok {
			return app.GridView{}, fmt.Errorf("invalid week start %q", v)
		}
		weekStart = ws
	}

	return s.App.View(month, weekStart, today, selected), nil
}

// ListNotes returns the notes for a day (YYYY-MM-DD), a month (YYYY-MM) or,
// with an empty when, every note.
func (s *Service) ListNotes(ctx context.Context, when string) ([]NoteDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoPersistence
	}
	when = strings.TrimSpace(when)
	var (
		notes []*note.Note
		err   error
	)
	switch {
	case when == "":
		notes, err = s.App.AllNotes(ctx)
	case len(when) == len("2006-01"):
		m, perr := calendar.ParseYearMonth(when)
		if perr != nil {
			return nil, fmt.Errorf("invalid month: %w", perr)
		}
		notes, err = s.App.MonthNotes(ctx, m)
	default:
		d, perr := calendar.ParseDate(when)
		if perr != nil {
			return nil, fmt.Errorf("invalid date: %w", perr)
		}
		notes, err = s.App.Notes(ctx, d)
	}
	if err != nil {
		return nil, err
	}
	return toDTOs(notes), nil
}

// AddNote files text under date (YYYY-MM-DD, or "today").
func (s *Service) AddNote(ctx context.Context, date, text string) (*NoteDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoPersistence
	}
	d, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	n, err := s.App.AddNote(ctx, d, text)
	if err != nil {
		return nil, err
	}
	dto := toDTO(n)
	return &dto, nil
}

// RemoveNote deletes the note with the given id.
func (s *Service) RemoveNote(ctx context.Context, id string) (*NoteDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoPersistence
	}
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id is required")
	}
	n, err := s.App.RemoveNote(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	dto := toDTO(n)
	return &dto, nil
}

func (s *Service) parseDay(value string) (calendar.Date, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "today":
		return s.today(), nil
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date: %w", err)
	}
	return d, nil
}

func toDTOs(notes []*note.Note) []NoteDTO {
	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toDTO(n))
	}
	return out
}

func toDTO(n *note.Note) NoteDTO {
	return NoteDTO{
		ID:         n.ID,
		Date:       n.Date.String(),
		Weekday:    n.Date.Weekday().String(),
		Text:       n.Text,
		CreatedISO: n.Created.Format(time.RFC3339),
	}
}
