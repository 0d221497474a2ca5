package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/logging"
	"tableflip.dev/calgrid/pkg/note"
)

// ErrNoteNotFound is returned when no note has the requested ID.
var ErrNoteNotFound = errors.New("store: note not found")

// Persistence defines the persistence contract for day notes.
type Persistence interface {
	Store(n *note.Note) error
	Delete(n *note.Note) error
	Get(ctx context.Context, id string) (*note.Note, error)
	List(ctx context.Context, day calendar.Date) []*note.Note
	ListMonth(ctx context.Context, month calendar.YearMonth) []*note.Note
	ListAll(ctx context.Context) []*note.Note
	SaveSelection(day calendar.Date) error
	LoadSelection() (calendar.Date, bool)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath, err := expandPath(cfg.BasePath())
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: logging.Stderr(cfg.LogLevel(), "store")}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

const (
	stateDir     = "state"
	selectionKey = stateDir + "-selection"
)

func (p *persistence) read(key string) (*note.Note, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	n := &note.Note{}
	if err := json.Unmarshal(val, n); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	n.ID = pk.FileName
	return n, nil
}

// collect reads every note whose key starts with prefix.
func (p *persistence) collect(ctx context.Context, prefix string) []*note.Note {
	all := make([]*note.Note, 0)
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		if !isNoteKey(key) {
			continue
		}
		n, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable note", "key", key, "err", err)
			continue
		}
		all = append(all, n)
	}
	note.Sort(all)
	return all
}

func (p *persistence) List(ctx context.Context, day calendar.Date) []*note.Note {
	return p.collect(ctx, day.String()+"-")
}

func (p *persistence) ListMonth(ctx context.Context, month calendar.YearMonth) []*note.Note {
	return p.collect(ctx, month.String()+"-")
}

func (p *persistence) ListAll(ctx context.Context) []*note.Note {
	return p.collect(ctx, "")
}

func (p *persistence) Get(ctx context.Context, id string) (*note.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNoteNotFound
	}
	// Returning early leaves the key walker blocked unless it is cancelled.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		if !isNoteKey(key) || !strings.HasSuffix(key, "-"+id) {
			continue
		}
		return p.read(key)
	}
	return nil, ErrNoteNotFound
}

func (p *persistence) Store(n *note.Note) error {
	if n.Date.IsZero() {
		return errors.New("store: note date required")
	}
	if strings.TrimSpace(n.Text) == "" {
		return errors.New("store: note text required")
	}
	n.EnsureID()
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(n), data); err != nil {
		return fmt.Errorf("store: write note: %w", err)
	}
	p.log.Debug("stored note", "day", n.Date, "id", n.ID)
	return nil
}

func (p *persistence) Delete(n *note.Note) error {
	if n.ID == "" {
		return ErrNoteNotFound
	}
	key := toKey(n)
	if !p.d.Has(key) {
		return ErrNoteNotFound
	}
	return p.d.Erase(key)
}

func (p *persistence) SaveSelection(day calendar.Date) error {
	return p.d.Write(selectionKey, []byte(day.String()))
}

func (p *persistence) LoadSelection() (calendar.Date, bool) {
	val, err := p.d.Read(selectionKey)
	if err != nil {
		return calendar.Date{}, false
	}
	day, err := calendar.ParseDate(strings.TrimSpace(string(val)))
	if err != nil {
		p.log.Warn("ignoring stored selection", "value", string(val), "err", err)
		return calendar.Date{}, false
	}
	return day, true
}

// Note keys are `YYYY-MM-DD-id`, stored on disk as YYYY/MM/DD/id.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(n *note.Note) string {
	return fmt.Sprintf("%s-%s", n.Date, n.EnsureID())
}

func isNoteKey(key string) bool {
	parts := strings.Split(key, "-")
	if len(parts) != 4 {
		return false
	}
	_, err := calendar.ParseDate(strings.Join(parts[:3], "-"))
	return err == nil
}

// dayFromParts parses the YYYY/MM/DD directory triple of a note path.
func dayFromParts(parts []string) (calendar.Date, bool) {
	if len(parts) < 3 {
		return calendar.Date{}, false
	}
	day, err := calendar.ParseDate(strings.Join(parts[:3], "-"))
	if err != nil {
		return calendar.Date{}, false
	}
	return day, true
}
