// Package note models the free-text notes attached to calendar days.
package note

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/calgrid/pkg/calendar"
)

// Note is a line of text filed under a calendar day.
type Note struct {
	ID      string        `json:"id,omitempty"`
	Date    calendar.Date `json:"date"`
	Text    string        `json:"text"`
	Created time.Time     `json:"created"`
}

// New creates a note for date stamped with the current time.
func New(date calendar.Date, text string) *Note {
	return &Note{
		Date:    date,
		Text:    strings.TrimSpace(text),
		Created: time.Now().UTC(),
	}
}

// EnsureID assigns a content hash ID if the note has none.
func (n *Note) EnsureID() string {
	if n.ID == "" {
		b, _ := json.Marshal(n)
		sum := md5.Sum(b)
		n.ID = fmt.Sprintf("%x", sum[:8])
	}
	return n.ID
}

func (n *Note) String() string {
	return fmt.Sprintf("%s %s", n.Date, n.Text)
}

// Sort orders notes by day, then creation time, then ID.
func Sort(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if !a.Created.Equal(b.Created) {
			return a.Created.Before(b.Created)
		}
		return a.ID < b.ID
	})
}

// Join renders notes as the annotation text of a day cell, one per line.
func Join(notes []*Note) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		if n == nil || n.Text == "" {
			continue
		}
		lines = append(lines, n.Text)
	}
	return strings.Join(lines, "\n")
}
