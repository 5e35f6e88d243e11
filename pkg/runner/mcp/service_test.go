package mcp

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/runner/seed"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

var march1 = schedule.Day{Year: 2024, Month: time.March, Day: 1}

func newService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	s := &seed.Seed{Persistence: p, Members: []string{"me", "187"}, From: march1, Days: 1, Today: march1, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewService(gateway.NewLocal(p, "me", "Me"), time.Second)
}

func TestServiceDay(t *testing.T) {
	svc := newService(t)

	dto, err := svc.Day(context.Background(), schedule.Self(), march1)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(dto.Schedules) != 3 || len(dto.Pills) != 4 {
		t.Fatalf("expected 3 slots and 4 pills, got %d and %d", len(dto.Schedules), len(dto.Pills))
	}
	if len(dto.Doing) != 1 || dto.Doing[0] != march1 || len(dto.Done) != 0 {
		t.Fatalf("expected march 1 in progress, got doing=%v done=%v", dto.Doing, dto.Done)
	}
}

func TestServiceCheckThenUncheck(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, id := range []int{2, 3} {
		if _, err := svc.Check(ctx, march1, id); err != nil {
			t.Fatalf("check %d: %v", id, err)
		}
	}
	dto, err := svc.Day(ctx, schedule.Self(), march1)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(dto.Done) != 1 || dto.Done[0] != march1 {
		t.Fatalf("expected march 1 done, got %v", dto.Done)
	}

	dto, err = svc.Uncheck(ctx, march1, 3)
	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if len(dto.Done) != 0 || len(dto.Doing) != 1 {
		t.Fatalf("expected march 1 back in progress, got doing=%v done=%v", dto.Doing, dto.Done)
	}
}

func TestServiceCheckUnknown(t *testing.T) {
	svc := newService(t)
	_, err := svc.Check(context.Background(), march1, 99)
	if schedule.KindOf(err) != schedule.KindUnknownScheduleID {
		t.Fatalf("expected unknown schedule id, got %v", err)
	}
}

func TestServiceReactAndStickers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.React(ctx, "", march1, 4, 1); err == nil {
		t.Fatalf("expected a member to be required")
	}
	if _, err := svc.React(ctx, "187", march1, 4, 1); err != nil {
		t.Fatalf("react: %v", err)
	}
	dto, err := svc.React(ctx, "187", march1, 4, 5)
	if err != nil {
		t.Fatalf("change reaction: %v", err)
	}
	var liked bool
	for _, p := range dto.Pills {
		if p.ScheduleID == 4 && p.IsLiked {
			liked = true
		}
	}
	if !liked {
		t.Fatalf("expected the reaction to show on the pill list: %+v", dto.Pills)
	}

	list, err := svc.Stickers(ctx, schedule.Member("187"), 4)
	if err != nil {
		t.Fatalf("stickers: %v", err)
	}
	if len(list) != 1 || list[0].StickerID != 5 || !list[0].SenderIsLiked {
		t.Fatalf("expected a single changed reaction, got %+v", list)
	}
}
