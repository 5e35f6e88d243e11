// Package follow keeps a day on screen and refreshes it when the data
// underneath changes.
package follow

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

const defaultPoll = 30 * time.Second

type Follow struct {
	Gateway gateway.Gateway
	Scope   schedule.Scope
	On      schedule.Day
	Timeout time.Duration
	// Poll is the refresh interval when the gateway cannot watch.
	Poll   time.Duration
	ShowID bool
	Out    io.Writer
}

// Do runs until ctx is cancelled.
func (f *Follow) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{Out: f.Out, ShowID: f.ShowID}
	sess, err := session.Open(f.Gateway, f.Scope, f.Timeout, pp, pp)
	if err != nil {
		return err
	}
	defer sess.Close()

	c := sess.Controller
	c.OnDateChanged(ctx, f.On)

	changes, err := f.watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			log.Debug("follow: refreshing", "day", c.Day())
			c.OnDateChanged(ctx, c.Day())
		}
	}
}

// watch returns a channel that fires whenever the active data may have
// changed, from storage events when available and a ticker otherwise.
func (f *Follow) watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	notify := func() {
		select {
		case out <- struct{}{}:
		default:
		}
	}

	if w, ok := f.Gateway.(gateway.Watcher); ok {
		changed, err := w.Watch(ctx)
		switch {
		case err == nil:
			go func() {
				defer close(out)
				for range changed {
					notify()
				}
			}()
			return out, nil
		case !errors.Is(err, gateway.ErrWatchUnsupported):
			return nil, err
		}
	}

	poll := f.Poll
	if poll <= 0 {
		poll = defaultPoll
	}
	go func() {
		defer close(out)
		t := time.NewTicker(poll)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				notify()
			}
		}
	}()
	return out, nil
}
