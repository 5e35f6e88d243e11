package seed

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

func TestSeed(t *testing.T) {
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	march1 := schedule.Day{Year: 2024, Month: time.March, Day: 1}
	var buf bytes.Buffer
	s := &Seed{
		Persistence: p,
		Members:     []string{"me", "187"},
		From:        march1.AddDays(-1),
		Days:        2,
		Today:       march1,
		Out:         &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(buf.String(), "seeded 12 slots for 2 members") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	feb := p.Schedules(context.Background(), "me", march1.AddDays(-1))
	if len(feb) != 3 {
		t.Fatalf("expected 3 february slots, got %d", len(feb))
	}
	for _, sc := range feb {
		if sc.Completion != schedule.Done {
			t.Fatalf("expected past slots done, got %+v", sc)
		}
	}

	march := p.Schedules(context.Background(), "187", march1)
	if len(march) != 3 || march[0].Completion != schedule.Done || march[1].Completion != schedule.Pending {
		t.Fatalf("unexpected march slots %+v", march)
	}
}

func TestSeedRejectsNoDays(t *testing.T) {
	if err := (&Seed{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error for zero days")
	}
}
