package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func marchView() app.GridView {
	c := calendar.NewController(calendar.Options{
		Today: calendar.NewDate(2024, time.March, 13),
		Annotator: calendar.AnnotatorFunc(func(d calendar.Date) string {
			switch d {
			case calendar.NewDate(2024, time.March, 1):
				return "close books\npayroll"
			case calendar.NewDate(2024, time.February, 29):
				return "leap"
			}
			return ""
		}),
	})
	return app.GridView{
		Label:     c.AnchorLabel(),
		Month:     c.Anchor().String(),
		Selected:  c.Selection(),
		Today:     c.Today(),
		WeekStart: c.WeekStart().String(),
		Cells:     c.Grid(),
	}
}

func TestGridPrintsSixWeeks(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Grid(marchView(), false)

	lines := strings.Split(buf.String(), "\n")
	if strings.TrimSpace(lines[0]) != "March 2024" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != " Su  Mo  Tu  We  Th  Fr  Sa " {
		t.Fatalf("unexpected header %q", lines[1])
	}
	if lines[2] != " 25  26  27  28  29*  1*  2 " {
		t.Fatalf("unexpected first week %q", lines[2])
	}
	if lines[7] != " 31   1   2   3   4   5   6 " {
		t.Fatalf("unexpected last week %q", lines[7])
	}
	if strings.Contains(buf.String(), "close books") {
		t.Fatalf("short grid should not list notes")
	}
}

func TestGridLongListsMonthNotes(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Grid(marchView(), true)

	out := buf.String()
	if !strings.Contains(out, " 1 Fri  close books\n        payroll\n") {
		t.Fatalf("expected agenda for March 1; out=%q", out)
	}
	if strings.Contains(out, "leap") {
		t.Fatalf("agenda should skip days outside the month; out=%q", out)
	}
}

func TestNotesTable(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}

	n := note.New(calendar.NewDate(2024, time.March, 1), "close books")
	n.EnsureID()
	pp.TitleWithCount("March 2024", 1)
	pp.Notes(n)

	out := buf.String()
	if !strings.Contains(out, "March 2024 - 1 note\n") {
		t.Fatalf("unexpected title; out=%q", out)
	}
	if !strings.Contains(out, n.ID+"  2024-03-01  close books") {
		t.Fatalf("unexpected row; out=%q", out)
	}

	buf.Reset()
	pp.ShowID = false
	pp.Notes()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected empty marker; out=%q", buf.String())
	}
}
