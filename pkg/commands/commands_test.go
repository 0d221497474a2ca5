package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"ui"},
		{"show"},
		{"cal"},
		{"note", "add"},
		{"note", "list"},
		{"notes", "ls"},
		{"note", "rm"},
		{"info"},
		{"mcp"},
		{"version"},
		{"completion"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Fatalf("expected command %v, got %v (err %v)", path, cmd.Name(), err)
		}
	}

	show, _, _ := root.Find([]string{"show"})
	for _, flag := range []string{"on", "month", "week-start", "long", "json"} {
		if show.Flags().Lookup(flag) == nil {
			t.Fatalf("show is missing --%s", flag)
		}
	}
}

func TestNoteAddRequiresText(t *testing.T) {
	root := New()
	add, _, _ := root.Find([]string{"note", "add"})
	if err := add.Args(add, nil); err == nil {
		t.Fatalf("expected error without text")
	}
	if err := add.Args(add, []string{"pay", "rent"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVersionShort(t *testing.T) {
	root := New()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--short"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "dev") {
		t.Fatalf("expected dev version, got %q", buf.String())
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("close books\npayroll"); got != "close books" {
		t.Fatalf("unexpected %q", got)
	}
	if got := firstLine("rent"); got != "rent" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestNoteRemoveArgs(t *testing.T) {
	root := New()
	rm, _, _ := root.Find([]string{"note", "rm"})
	if err := rm.Args(rm, nil); err == nil {
		t.Fatalf("expected error without ids")
	}
	if err := rm.Flags().Set("interactive", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := rm.Args(rm, nil); err != nil {
		t.Fatalf("interactive rm needs no ids: %v", err)
	}
}

func TestMCPOptionsRunner(t *testing.T) {
	o := &mcpOptions{transport: "HTTP", host: " ", port: 9000}
	r, err := o.runner()
	if err != nil {
		t.Fatalf("runner failed: %v", err)
	}
	if r.Addr != "127.0.0.1:9000" || r.Name != "calgrid" {
		t.Fatalf("unexpected runner %+v", r)
	}

	o = &mcpOptions{transport: "stdio"}
	if r, err := o.runner(); err != nil || r.Transport != "stdio" {
		t.Fatalf("expected stdio runner, got %+v (err %v)", r, err)
	}

	for _, bad := range []*mcpOptions{
		{transport: "http", port: 70000},
		{transport: "carrier-pigeon"},
	} {
		if _, err := bad.runner(); err == nil {
			t.Fatalf("expected error for %+v", bad)
		}
	}
}
