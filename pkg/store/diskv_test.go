package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
)

var march1 = schedule.Day{Year: 2024, Month: time.March, Day: 1}

func seeded(t *testing.T) (Persistence, *ScheduleRecord, *ScheduleRecord) {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	morning := &ScheduleRecord{MemberID: "me", Date: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), TimeSlot: "08:00"}
	evening := &ScheduleRecord{MemberID: "me", Date: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), TimeSlot: "20:00"}
	other := &ScheduleRecord{MemberID: "187", Date: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), TimeSlot: "08:00"}
	for _, r := range []*ScheduleRecord{morning, evening, other} {
		if err := p.PutSchedule(r); err != nil {
			t.Fatalf("put schedule: %v", err)
		}
	}
	pills := []*PillRecord{
		{ScheduleID: morning.ID, MemberID: "me", Name: "Vitamin D", TimeSlot: "08:00"},
		{ScheduleID: evening.ID, MemberID: "me", Name: "Iron", TimeSlot: "20:00"},
		{ScheduleID: evening.ID, MemberID: "me", Name: "Omega 3", TimeSlot: "20:00", Checked: true},
		{ScheduleID: other.ID, MemberID: "187", Name: "Aspirin", TimeSlot: "08:00"},
	}
	for _, r := range pills {
		if err := p.PutPill(r); err != nil {
			t.Fatalf("put pill: %v", err)
		}
	}
	return p, morning, evening
}

func TestSchedulesDeriveCompletion(t *testing.T) {
	p, morning, evening := seeded(t)
	ctx := context.Background()

	got := p.Schedules(ctx, "me", march1)
	if len(got) != 2 {
		t.Fatalf("expected 2 schedules for me, got %d", len(got))
	}
	if got[0].ID != morning.ID || got[0].Completion != schedule.Pending {
		t.Fatalf("unexpected morning schedule %+v", got[0])
	}
	if got[1].ID != evening.ID || got[1].Completion != schedule.Doing {
		t.Fatalf("unexpected evening schedule %+v", got[1])
	}

	if err := p.SetChecked(ctx, evening.ID, true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	got = p.Schedules(ctx, "me", march1)
	if got[1].Completion != schedule.Done {
		t.Fatalf("expected evening done, got %q", got[1].Completion)
	}
	if len(p.Schedules(ctx, "me", march1.AddDays(31))) != 0 {
		t.Fatalf("expected no schedules in april")
	}
}

func TestSetCheckedUnknownSchedule(t *testing.T) {
	p, _, _ := seeded(t)
	err := p.SetChecked(context.Background(), 999, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPillsForDay(t *testing.T) {
	p, _, evening := seeded(t)
	ctx := context.Background()
	pills := p.Pills(ctx, "me", march1, "me")
	if len(pills) != 3 {
		t.Fatalf("expected 3 pills, got %d", len(pills))
	}
	if pills[0].TimeSlot != "08:00" || pills[2].ScheduleID != evening.ID {
		t.Fatalf("unexpected ordering %+v", pills)
	}
	if len(p.Pills(ctx, "me", march1.AddDays(1), "me")) != 0 {
		t.Fatalf("expected no pills on march 2")
	}
}

func TestLikes(t *testing.T) {
	p, morning, _ := seeded(t)
	ctx := context.Background()
	if err := p.SetChecked(ctx, morning.ID, true); err != nil {
		t.Fatalf("set checked: %v", err)
	}

	like, err := p.AddLike(ctx, morning.ID, "187", "Friend", 3)
	if err != nil {
		t.Fatalf("add like: %v", err)
	}
	if _, err := p.AddLike(ctx, morning.ID, "187", "Friend", 4); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate reaction, got %v", err)
	}

	pills := p.Pills(ctx, "me", march1, "187")
	if !pills[0].IsLiked || pills[0].LikeScheduleID != like.ID || pills[0].StickerCount != 1 {
		t.Fatalf("expected liked morning pill, got %+v", pills[0])
	}

	if err := p.ChangeLike(ctx, like.ID, 5); err != nil {
		t.Fatalf("change like: %v", err)
	}
	reactions := p.Likes(ctx, morning.ID, "187")
	if len(reactions) != 1 || reactions[0].StickerID != 5 || !reactions[0].SenderIsLiked {
		t.Fatalf("unexpected reactions %+v", reactions)
	}
	if got := p.Likes(ctx, morning.ID, "me"); got[0].SenderIsLiked {
		t.Fatalf("viewer me did not send the reaction")
	}
	if err := p.ChangeLike(ctx, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutPillRequiresSchedule(t *testing.T) {
	p, _, _ := seeded(t)
	if err := p.PutPill(&PillRecord{ScheduleID: 999, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddLikeNeedsATakenSlot(t *testing.T) {
	p, morning, evening := seeded(t)
	ctx := context.Background()

	if _, err := p.AddLike(ctx, morning.ID, "187", "Friend", 3); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on a pending slot, got %v", err)
	}
	if got := p.Likes(ctx, morning.ID, ""); len(got) != 0 {
		t.Fatalf("expected no reaction stored, got %+v", got)
	}
	// Evening has one of two pills taken.
	if _, err := p.AddLike(ctx, evening.ID, "187", "Friend", 3); err != nil {
		t.Fatalf("expected a slot in progress to take reactions, got %v", err)
	}
}

func TestUncheckDropsStickers(t *testing.T) {
	p, morning, evening := seeded(t)
	ctx := context.Background()
	if err := p.SetChecked(ctx, morning.ID, true); err != nil {
		t.Fatalf("set checked: %v", err)
	}
	for _, id := range []int{morning.ID, evening.ID} {
		if _, err := p.AddLike(ctx, id, "187", "Friend", 1); err != nil {
			t.Fatalf("add like on %d: %v", id, err)
		}
	}

	if err := p.SetChecked(ctx, morning.ID, false); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if got := p.Likes(ctx, morning.ID, ""); len(got) != 0 {
		t.Fatalf("expected the unchecked slot's stickers gone, got %+v", got)
	}
	if got := p.Likes(ctx, evening.ID, ""); len(got) != 1 {
		t.Fatalf("expected other slots to keep their stickers, got %+v", got)
	}
	if pills := p.Pills(ctx, "me", march1, "187"); pills[0].StickerCount != 0 || pills[0].IsLiked {
		t.Fatalf("expected the morning pill to lose its reaction, got %+v", pills[0])
	}
}
