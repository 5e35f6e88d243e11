package uncheck

import (
	"bytes"
	"context"
	"errors"
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

func seeded(t *testing.T) (store.Persistence, gateway.Gateway) {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	s := &seed.Seed{Persistence: p, Members: []string{"me"}, From: march1, Days: 1, Today: march1, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p, gateway.NewLocal(p, "me", "Me")
}

func TestUncheckDeclined(t *testing.T) {
	p, gw := seeded(t)
	var buf bytes.Buffer
	asked := 0
	u := &Uncheck{
		Gateway:    gw,
		On:         march1,
		ScheduleID: 1,
		Timeout:    time.Second,
		Out:        &buf,
		Confirm: func(s schedule.Schedule) (bool, error) {
			asked++
			if s.ID != 1 || s.TimeSlot != "08:00" {
				t.Errorf("asked about the wrong slot %+v", s)
			}
			return false, nil
		},
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if asked != 1 || !strings.Contains(buf.String(), "left unchanged") {
		t.Fatalf("expected one prompt and a notice, got %d and %q", asked, buf.String())
	}
	if got := p.Schedules(context.Background(), "me", march1)[0].Completion; got != schedule.Done {
		t.Fatalf("expected slot 1 still done, got %q", got)
	}
}

func TestUncheckConfirmed(t *testing.T) {
	p, gw := seeded(t)
	u := &Uncheck{
		Gateway:    gw,
		On:         march1,
		ScheduleID: 1,
		Timeout:    time.Second,
		Out:        &bytes.Buffer{},
		Confirm:    func(schedule.Schedule) (bool, error) { return true, nil },
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if got := p.Schedules(context.Background(), "me", march1)[0].Completion; got != schedule.Pending {
		t.Fatalf("expected slot 1 pending, got %q", got)
	}
}

func TestUncheckPromptError(t *testing.T) {
	_, gw := seeded(t)
	boom := errors.New("no terminal")
	u := &Uncheck{
		Gateway:    gw,
		On:         march1,
		ScheduleID: 1,
		Timeout:    time.Second,
		Confirm:    func(schedule.Schedule) (bool, error) { return false, boom },
	}
	if err := u.Do(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected prompt error, got %v", err)
	}
}
