// Package prompt holds the interactive terminal pickers used by the CLI.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/calgrid/pkg/note"
)

// ErrNoNotes is returned when there is nothing to pick from.
var ErrNoNotes = errors.New("no notes to choose from")

// PickNote asks the user to choose one of notes.
func PickNote(in io.Reader, out io.Writer, label string, notes []*note.Note) (*note.Note, error) {
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Date | bold }} {{ .Text | green }}",
		Inactive: "   {{ .Date }} {{ .Text | cyan }}",
		Selected: "{{ .Date | bold }} {{ .Text }}",
		Details: `
--------- Note ---------
{{ .ID | faint }}
{{ .Text }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     notes,
		Templates: templates,
		Size:      10,
		Searcher:  noteSearcher(notes),
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return notes[i], nil
}

// noteSearcher matches the typed input against a note's day and text,
// ignoring case and spaces.
func noteSearcher(notes []*note.Note) func(string, int) bool {
	return func(input string, index int) bool {
		n := notes[index]
		hay := squash(n.Date.String() + n.Text)
		return strings.Contains(hay, squash(input))
	}
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
