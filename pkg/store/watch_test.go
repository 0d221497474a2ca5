package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/note"
)

func TestPersistenceWatchEmitsDayChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	day := calendar.NewDate(2024, time.March, 1)
	if err := p.Store(note.New(day, "month end close")); err != nil {
		t.Fatalf("store note: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventDayChanged {
				if evt.Day != day {
					t.Fatalf("expected day %s, got %s", day, evt.Day)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for day change event")
		}
	}
}

func TestCoalescerCollapsesBursts(t *testing.T) {
	c := newCoalescer(10 * time.Millisecond)
	defer c.Stop()

	if c.C() != nil {
		t.Fatalf("expected no timer while idle")
	}

	mar1 := calendar.NewDate(2024, time.March, 1)
	mar2 := calendar.NewDate(2024, time.March, 2)
	c.Add(Event{Type: EventDayChanged, Day: mar2})
	c.Add(Event{Type: EventDayChanged, Day: mar1})
	c.Add(Event{Type: EventDayChanged, Day: mar2})

	select {
	case <-c.C():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the burst to be due")
	}
	got := c.Flush()
	if len(got) != 2 || got[0].Day != mar1 || got[1].Day != mar2 {
		t.Fatalf("expected one event per day in order, got %+v", got)
	}
	if c.C() != nil {
		t.Fatalf("expected flush to disarm the timer")
	}

	c.Add(Event{Type: EventDayChanged, Day: mar1})
	c.Add(Event{Type: EventInvalidated})
	<-c.C()
	if got := c.Flush(); len(got) != 1 || got[0].Type != EventInvalidated {
		t.Fatalf("expected invalidation to win, got %+v", got)
	}
}

func TestWatchClosesCleanlyAfterBursts(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	for i := 0; i < 30; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			t.Fatalf("watch: %v", err)
		}
		day := calendar.NewDate(2024, time.March, 1+i%28)
		if err := p.Store(note.New(day, "burst")); err != nil {
			cancel()
			t.Fatalf("store note: %v", err)
		}
		// Cancel around the moment the burst becomes due.
		time.Sleep(watchCoalesceDelay + time.Duration(i%5)*time.Millisecond)
		cancel()

		deadline := time.After(2 * time.Second)
	drain:
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					break drain
				}
			case <-deadline:
				t.Fatalf("watch channel not closed after cancel (iteration %d)", i)
			}
		}
	}
}

func TestTreeWatcherClassify(t *testing.T) {
	base := filepath.Join(string(os.PathSeparator), "notes")
	w := &treeWatcher{base: base}
	day := calendar.NewDate(2024, time.March, 1)

	tests := []struct {
		path string
		want Event
		ok   bool
	}{
		{filepath.Join(base, "2024", "03", "01"), Event{Type: EventDayChanged, Day: day}, true},
		{filepath.Join(base, "2024", "03", "01", "abc"), Event{Type: EventDayChanged, Day: day}, true},
		{filepath.Join(base, "2024", "03"), Event{Type: EventInvalidated}, true},
		{filepath.Join(base, "state", "selection"), Event{}, false},
		{base, Event{}, false},
		{filepath.Join(string(os.PathSeparator), "elsewhere"), Event{}, false},
	}
	for _, tt := range tests {
		got, ok := w.classify(tt.path)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("classify(%q): expected %+v/%v, got %+v/%v", tt.path, tt.want, tt.ok, got, ok)
		}
	}
}
