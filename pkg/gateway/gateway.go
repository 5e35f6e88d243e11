// Package gateway talks to the schedule backend on behalf of the sync
// controller. Every call is asynchronous from the controller's point of view
// and may fail; implementations classify failures with the error kinds in
// package schedule.
package gateway

import (
	"context"
	"errors"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

// Gateway is the remote schedule service.
type Gateway interface {
	// FetchSchedules returns the schedules of the month containing day.
	FetchSchedules(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.Schedule, error)
	// FetchPillEntries returns the pill entries for day.
	FetchPillEntries(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.PillEntry, error)
	FetchStickers(ctx context.Context, scheduleID int) ([]schedule.StickerReaction, error)
	SetPillChecked(ctx context.Context, scheduleID int, checked bool) error
	SendStickerReaction(ctx context.Context, scheduleID, stickerID int) error
	ChangeStickerReaction(ctx context.Context, likeScheduleID, stickerID int) error
}

// ErrWatchUnsupported is returned by wrappers around gateways that cannot watch.
var ErrWatchUnsupported = errors.New("gateway: watch unsupported")

// Watcher is implemented by gateways that can report data changes made
// outside the current session.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}
