package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/calgrid/pkg/calendar"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDayChanged indicates the notes filed under Event.Day changed.
	EventDayChanged EventType = iota

	// EventInvalidated signals a change that could not be attributed to a
	// single day; callers should drop everything they cached.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Day  calendar.Date
}

const watchCoalesceDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Events are coalesced
// per burst and dropped when the consumer falls behind. The channel closes
// when ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	w := &treeWatcher{
		fs:      fw,
		base:    filepath.Clean(p.basePath),
		watched: make(map[string]bool),
		log:     p.log,
	}
	if err := w.addTree(w.base); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("store: watch %s: %w", w.base, err)
	}

	out := make(chan Event, 64)
	go w.run(ctx, out)
	return out, nil
}

// treeWatcher follows every directory under base, adding watches for the
// year/month/day directories created as notes are filed.
type treeWatcher struct {
	fs      *fsnotify.Watcher
	base    string
	watched map[string]bool
	log     *slog.Logger
}

func (w *treeWatcher) run(ctx context.Context, out chan<- Event) {
	defer close(out)
	defer func() {
		if err := w.fs.Close(); err != nil {
			w.log.Warn("watcher close", "err", err)
		}
	}()

	send := func(ev Event) {
		select {
		case out <- ev:
		default:
		}
	}
	c := newCoalescer(watchCoalesceDelay)
	defer c.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.C():
			for _, ev := range c.Flush() {
				send(ev)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Debug("watcher error", "err", err)
			c.Add(Event{Type: EventInvalidated})
		case fe, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if fe.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(fe.Name); err == nil && info.IsDir() {
					if err := w.addTree(fe.Name); err != nil {
						w.log.Warn("watch directory", "dir", fe.Name, "err", err)
					}
				}
			}
			if ev, ok := w.classify(fe.Name); ok {
				c.Add(ev)
			}
		}
	}
}

// addTree watches root and every directory below it. A directory may
// already hold children by the time its create event arrives.
func (w *treeWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		path = filepath.Clean(path)
		if w.watched[path] {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return err
		}
		w.watched[path] = true
		return nil
	})
}

// classify maps a changed path to an event. Paths under the state directory
// are ignored; day and note paths name their day; anything else invalidates.
func (w *treeWatcher) classify(path string) (Event, bool) {
	rel, err := filepath.Rel(w.base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Event{}, false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if parts[0] == stateDir {
		return Event{}, false
	}
	if len(parts) == 3 || len(parts) == 4 {
		if day, ok := dayFromParts(parts); ok {
			return Event{Type: EventDayChanged, Day: day}, true
		}
	}
	return Event{Type: EventInvalidated}, true
}

// coalescer collects the events of a burst until delay after its first
// event, then hands each distinct event out once. An invalidation in the
// burst replaces every day change. It is owned by a single goroutine that
// selects on C and calls Flush when it fires.
type coalescer struct {
	delay   time.Duration
	timer   *time.Timer
	pending map[Event]bool
}

func newCoalescer(delay time.Duration) *coalescer {
	return &coalescer{delay: delay, pending: make(map[Event]bool)}
}

// Add records ev, arming the timer at the start of a burst.
func (c *coalescer) Add(ev Event) {
	c.pending[ev] = true
	if c.timer == nil {
		c.timer = time.NewTimer(c.delay)
	}
}

// C fires when the pending burst is due. It is nil, and so never ready,
// while nothing is pending.
func (c *coalescer) C() <-chan time.Time {
	if c.timer == nil {
		return nil
	}
	return c.timer.C
}

// Flush returns the pending events ordered by day and starts a new burst.
func (c *coalescer) Flush() []Event {
	c.Stop()
	pending := c.pending
	c.pending = make(map[Event]bool)

	if pending[Event{Type: EventInvalidated}] {
		return []Event{{Type: EventInvalidated}}
	}
	events := make([]Event, 0, len(pending))
	for ev := range pending {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Day.Before(events[j].Day) })
	return events
}

func (c *coalescer) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
