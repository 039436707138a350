package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gito/internal/prayer"
	"github.com/gito/internal/service"
)

func TestPrintTimes(t *testing.T) {
	var buf bytes.Buffer
	result := service.ScheduleResult{
		Schedule: prayer.Fallback,
		Source:   service.SourceFallback,
		City:     "Istanbul",
		Country:  "Turkey",
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	if err := printTimes(&buf, result, time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), "tr"); err != nil {
		t.Fatalf("printTimes returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Istanbul, Turkey  2026-03-10  (fallback)",
		"Yatsı",
		"Şu anki aralık: Yatsı — İmsak",
		"Sıradaki: İmsak 09:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "seed", "times"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %s not registered: %v", name, err)
		}
	}
}
