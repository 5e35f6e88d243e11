package gateway

import (
	"context"
	"time"

	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

// Retrying retries reads that failed because the network was unavailable.
// Mutations pass straight through to the wrapped gateway.
type Retrying struct {
	Gateway

	attempts int
	backoff  time.Duration
}

// WithRetry wraps g. attempts counts the first try; backoff doubles after
// every failure.
func WithRetry(g Gateway, attempts int, backoff time.Duration) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{Gateway: g, attempts: attempts, backoff: backoff}
}

func (r *Retrying) FetchSchedules(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	err := r.retry(ctx, "schedules", func() (err error) {
		out, err = r.Gateway.FetchSchedules(ctx, day, scope)
		return err
	})
	return out, err
}

func (r *Retrying) FetchPillEntries(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.PillEntry, error) {
	var out []schedule.PillEntry
	err := r.retry(ctx, "pills", func() (err error) {
		out, err = r.Gateway.FetchPillEntries(ctx, day, scope)
		return err
	})
	return out, err
}

func (r *Retrying) FetchStickers(ctx context.Context, scheduleID int) ([]schedule.StickerReaction, error) {
	var out []schedule.StickerReaction
	err := r.retry(ctx, "stickers", func() (err error) {
		out, err = r.Gateway.FetchStickers(ctx, scheduleID)
		return err
	})
	return out, err
}

// Watch forwards to the wrapped gateway when it can watch.
func (r *Retrying) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := r.Gateway.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

func (r *Retrying) retry(ctx context.Context, op string, fn func() error) error {
	wait := r.backoff
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || attempt >= r.attempts || schedule.KindOf(err) != schedule.KindNetworkUnavailable {
			return err
		}
		log.Debug("gateway retry", "op", op, "attempt", attempt, "wait", wait)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
		wait *= 2
	}
}
