package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/calgrid/pkg/note"
	"tableflip.dev/calgrid/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("CALGRID_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "CALGRID_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "CALGRID_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if used := store.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintln(out, "Config file: ", used)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.week_start: ", n.Config.WeekStart())
	_, _ = fmt.Fprintln(out, "Config.log_level: ", n.Config.LogLevel())

	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	if day, ok := n.Persistence.LoadSelection(); ok {
		_, _ = fmt.Fprintln(out, "Last selection: ", day)
	}

	_, _ = fmt.Fprintf(out, "Months:\n")
	months := monthCounts(n.Persistence.ListAll(ctx))
	for _, mc := range months {
		_, _ = fmt.Fprintf(out, "  %s  %d\n", mc.month, mc.count)
	}
	if len(months) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no notes")
	}

	return nil
}

type monthCount struct {
	month string
	count int
}

// monthCounts tallies sorted notes by month, preserving their order.
func monthCounts(all []*note.Note) []monthCount {
	counts := make([]monthCount, 0)
	for _, n := range all {
		m := n.Date.YearMonth().String()
		if len(counts) > 0 && counts[len(counts)-1].month == m {
			counts[len(counts)-1].count++
			continue
		}
		counts = append(counts, monthCount{month: m, count: 1})
	}
	return counts
}
