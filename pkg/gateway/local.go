package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

// Local serves the controller straight from on-disk persistence. It is what
// the CLI uses when no remote is configured.
type Local struct {
	p    store.Persistence
	self string
	name string
}

var (
	_ Gateway = (*Local)(nil)
	_ Watcher = (*Local)(nil)
)

// NewLocal returns a gateway acting as member self.
func NewLocal(p store.Persistence, self, name string) *Local {
	return &Local{p: p, self: self, name: name}
}

func (l *Local) FetchSchedules(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.Schedule, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	all := l.p.Schedules(ctx, scope.Resolve(l.self), day)
	// A scan cut short by ctx is partial, not empty.
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return all, nil
}

func (l *Local) FetchPillEntries(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.PillEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	all := l.p.Pills(ctx, scope.Resolve(l.self), day, l.self)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return all, nil
}

func (l *Local) FetchStickers(ctx context.Context, scheduleID int) ([]schedule.StickerReaction, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	all := l.p.Likes(ctx, scheduleID, l.self)
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return all, nil
}

func (l *Local) SetPillChecked(ctx context.Context, scheduleID int, checked bool) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return rejected(l.p.SetChecked(ctx, scheduleID, checked))
}

func (l *Local) SendStickerReaction(ctx context.Context, scheduleID, stickerID int) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	_, err := l.p.AddLike(ctx, scheduleID, l.self, l.name, stickerID)
	return rejected(err)
}

func (l *Local) ChangeStickerReaction(ctx context.Context, likeScheduleID, stickerID int) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return rejected(l.p.ChangeLike(ctx, likeScheduleID, stickerID))
}

// Watch forwards storage change notifications.
func (l *Local) Watch(ctx context.Context) (<-chan store.Event, error) {
	return l.p.Watch(ctx)
}

// ctxErr goes by Done rather than Err alone; persistence scans stop on Done.
func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
	default:
		return nil
	}
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return fmt.Errorf("gateway: %w: %v", schedule.ErrNetworkUnavailable, err)
	}
	return fmt.Errorf("gateway: %w", schedule.ErrTimeout)
}

// rejected maps persistence failures to the status a server would answer with.
func rejected(err error) error {
	if err == nil {
		return nil
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	}
	return fmt.Errorf("gateway: %w", &schedule.RemoteError{Status: status, Message: err.Error()})
}
