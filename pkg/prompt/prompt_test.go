package prompt

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
)

func TestNoteSearcher(t *testing.T) {
	notes := []*note.Note{
		note.New(calendar.NewDate(2024, time.March, 1), "Close Books"),
		note.New(calendar.NewDate(2024, time.April, 2), "dentist"),
	}
	search := noteSearcher(notes)

	tests := []struct {
		input string
		index int
		want  bool
	}{
		{"closebooks", 0, true},
		{"close books", 0, true},
		{"dentist", 0, false},
		{"2024-04", 1, true},
		{"2024-04", 0, false},
		{"", 1, true},
	}
	for _, tt := range tests {
		if got := search(tt.input, tt.index); got != tt.want {
			t.Fatalf("search(%q, %d): expected %v, got %v", tt.input, tt.index, tt.want, got)
		}
	}
}

func TestPickNoteWithoutNotes(t *testing.T) {
	_, err := PickNote(&bytes.Buffer{}, &bytes.Buffer{}, "Remove", nil)
	if !errors.Is(err, ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}
}
