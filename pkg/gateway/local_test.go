package gateway

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
)

func TestLocalScopes(t *testing.T) {
	p, theirs := seedStore(t)
	g := NewLocal(p, "me", "Me")
	ctx := context.Background()

	mine, err := g.FetchSchedules(ctx, march1, schedule.Self())
	if err != nil || len(mine) != 1 || mine[0].MemberID != "me" {
		t.Fatalf("unexpected own schedules %+v (%v)", mine, err)
	}
	shared, err := g.FetchSchedules(ctx, march1, schedule.Member("187"))
	if err != nil || len(shared) != 1 || shared[0].ID != theirs {
		t.Fatalf("unexpected member schedules %+v (%v)", shared, err)
	}
}

func TestLocalReactions(t *testing.T) {
	p, theirs := seedStore(t)
	g := NewLocal(p, "me", "Me")
	ctx := context.Background()

	if err := g.SendStickerReaction(ctx, theirs, 1); err != nil {
		t.Fatalf("send: %v", err)
	}
	err := g.SendStickerReaction(ctx, theirs, 2)
	var remote *schedule.RemoteError
	if !errors.As(err, &remote) || remote.Status != http.StatusConflict {
		t.Fatalf("expected a 409 rejection for a duplicate reaction, got %v", err)
	}

	stickers, err := g.FetchStickers(ctx, theirs)
	if err != nil || len(stickers) != 1 || !stickers[0].SenderIsLiked {
		t.Fatalf("unexpected stickers %+v (%v)", stickers, err)
	}
	if err := g.ChangeStickerReaction(ctx, stickers[0].LikeScheduleID, 7); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := g.ChangeStickerReaction(ctx, 999, 7); !errors.Is(err, schedule.ErrRemoteRejected) {
		t.Fatalf("expected rejection for unknown like, got %v", err)
	}
}

func TestLocalHonoursDeadline(t *testing.T) {
	p, _ := seedStore(t)
	g := NewLocal(p, "me", "Me")
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if _, err := g.FetchPillEntries(ctx, march1, schedule.Self()); !errors.Is(err, schedule.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

// lateDeadline is open for the first Done call and closed after it, with an
// Err that never says why, like a deadline landing between two checks.
type lateDeadline struct {
	context.Context
	mu     sync.Mutex
	calls  int
	closed chan struct{}
}

func newLateDeadline() *lateDeadline {
	closed := make(chan struct{})
	close(closed)
	return &lateDeadline{Context: context.Background(), closed: closed}
}

func (l *lateDeadline) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.calls == 1 {
		return nil
	}
	return l.closed
}

func (l *lateDeadline) Err() error { return nil }

func TestLocalDropsReadsCutShort(t *testing.T) {
	p, theirs := seedStore(t)
	g := NewLocal(p, "me", "Me")

	if got, err := g.FetchSchedules(context.Background(), march1, schedule.Self()); err != nil || len(got) != 1 {
		t.Fatalf("expected the full read to succeed, got %+v (%v)", got, err)
	}

	got, err := g.FetchSchedules(newLateDeadline(), march1, schedule.Self())
	if schedule.KindOf(err) != schedule.KindTimeout || got != nil {
		t.Fatalf("expected a timeout and no schedules, got %+v (%v)", got, err)
	}
	pills, err := g.FetchPillEntries(newLateDeadline(), march1, schedule.Member("187"))
	if schedule.KindOf(err) != schedule.KindTimeout || pills != nil {
		t.Fatalf("expected a timeout and no pills, got %+v (%v)", pills, err)
	}
	stickers, err := g.FetchStickers(newLateDeadline(), theirs)
	if schedule.KindOf(err) != schedule.KindTimeout || stickers != nil {
		t.Fatalf("expected a timeout and no stickers, got %+v (%v)", stickers, err)
	}
}
