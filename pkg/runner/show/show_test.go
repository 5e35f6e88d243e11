package show

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/runner/seed"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

var march1 = schedule.Day{Year: 2024, Month: time.March, Day: 1}

func seeded(t *testing.T) gateway.Gateway {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	s := &seed.Seed{Persistence: p, Members: []string{"me", "187"}, From: march1, Days: 1, Today: march1, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gateway.NewLocal(p, "me", "Me")
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	s := &Show{
		Gateway: seeded(t),
		Scope:   schedule.Self(),
		On:      march1,
		Timeout: time.Second,
		ShowID:  true,
		Out:     &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"Friday, March 1, 2024", "● 08:00", "○ 13:00", "Vitamin D", "Magnesium"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestShowMember(t *testing.T) {
	var buf bytes.Buffer
	s := &Show{Gateway: seeded(t), Scope: schedule.Member("187"), On: march1, Timeout: time.Second, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "(187)") {
		t.Fatalf("expected member in title:\n%s", buf.String())
	}
}

func TestShowEmptyDay(t *testing.T) {
	var buf bytes.Buffer
	s := &Show{Gateway: seeded(t), Scope: schedule.Self(), On: march1.AddDays(5), Timeout: time.Second, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "no pills") {
		t.Fatalf("expected empty notice:\n%s", buf.String())
	}
}
