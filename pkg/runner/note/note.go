// Package note provides the CLI runners that manage day notes.
package note

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
	"tableflip.dev/calgrid/pkg/printers"
)

// Add files a note under On and prints that day's notes.
type Add struct {
	On     calendar.Date
	Text   string
	ShowID bool
	JSON   bool

	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	created, err := n.Service.AddNote(ctx, n.On, n.Text)
	if err != nil {
		return err
	}
	if n.JSON {
		return encode(n.Out, created)
	}
	all, err := n.Service.Notes(ctx, n.On)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount(n.On.String(), len(all))
	pp.Notes(all...)
	return nil
}

// List prints notes for a day, a month, or everything when both are zero.
type List struct {
	On     calendar.Date
	Month  calendar.YearMonth
	ShowID bool
	JSON   bool

	Service *app.Service
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	var (
		title string
		all   []*note.Note
		err   error
	)
	switch {
	case !n.On.IsZero():
		title = n.On.String()
		all, err = n.Service.Notes(ctx, n.On)
	case n.Month != (calendar.YearMonth{}):
		title = n.Month.Label()
		all, err = n.Service.MonthNotes(ctx, n.Month)
	default:
		title = "All notes"
		all, err = n.Service.AllNotes(ctx)
	}
	if err != nil {
		return err
	}
	if n.JSON {
		return encode(n.Out, all)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount(title, len(all))
	pp.Notes(all...)
	return nil
}

// Remove deletes notes by ID.
type Remove struct {
	IDs  []string
	JSON bool

	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	removed := make([]*note.Note, 0, len(n.IDs))
	for _, id := range n.IDs {
		r, err := n.Service.RemoveNote(ctx, id)
		if err != nil {
			return err
		}
		removed = append(removed, r)
	}
	if n.JSON {
		return encode(n.Out, removed)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.TitleWithCount("Removed", len(removed))
	pp.Notes(removed...)
	return nil
}

func encode(out io.Writer, v any) error {
	if out == nil {
		out = color.Output
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
