// Package controller coordinates schedule fetches, optimistic completion
// toggles and sticker reactions for one date session. Every navigation issues
// a new request token; results carrying an older token are dropped so the
// store always reflects the most recently requested date.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/sobok/pkg/cache"
	"tableflip.dev/sobok/pkg/events"
	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/schedule"
)

// DefaultFetchTimeout bounds every gateway call when Options leaves it unset.
const DefaultFetchTimeout = 10 * time.Second

// Token identifies one date request. Tokens only grow.
type Token uint64

// Phase is the fetch state of the current token.
type Phase int

const (
	Idle Phase = iota
	Fetching
)

func (p Phase) String() string {
	if p == Fetching {
		return "fetching"
	}
	return "idle"
}

// Outcome records what happened to the last result the controller handled.
type Outcome int

const (
	OutcomeNone Outcome = iota
	Applied
	StaleDiscarded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case StaleDiscarded:
		return "stale-discarded"
	case Failed:
		return "failed"
	default:
		return "none"
	}
}

// Options configures a Controller.
type Options struct {
	Scope        schedule.Scope
	FetchTimeout time.Duration
	Presenter    Presenter
	Calendar     CalendarRenderer
}

// Controller is the sync controller for one view session. It is the only
// writer of its store.
type Controller struct {
	gw        gateway.Gateway
	store     *cache.Cache
	bus       *events.Bus
	scope     schedule.Scope
	timeout   time.Duration
	presenter Presenter
	calendar  CalendarRenderer

	// ctx backs work started from bus notifications; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	// applyMu serialises store mutations with their notifications.
	applyMu sync.Mutex

	mu       sync.Mutex
	token    Token
	day      schedule.Day
	phase    Phase
	outcome  Outcome
	uncheck  int
	awaiting bool
	group    *events.Group
	closed   bool

	wg sync.WaitGroup
}

// New creates a controller over gw and store. The bus is only used once
// Attach is called.
func New(gw gateway.Gateway, store *cache.Cache, bus *events.Bus, opts Options) (*Controller, error) {
	if gw == nil {
		return nil, errors.New("controller: gateway required")
	}
	if store == nil {
		return nil, errors.New("controller: store required")
	}
	if err := opts.Scope.Validate(); err != nil {
		return nil, err
	}
	if opts.Scope.Kind == "" {
		opts.Scope = schedule.Self()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Presenter == nil {
		opts.Presenter = nopPresenter{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		gw:        gw,
		store:     store,
		bus:       bus,
		scope:     opts.Scope,
		timeout:   opts.FetchTimeout,
		presenter: opts.Presenter,
		calendar:  opts.Calendar,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Attach subscribes to the sticker topics for the lifetime of the session.
// The reveal topic is always observed; sent stickers only matter when looking
// at another member's schedule.
func (c *Controller) Attach() {
	if c.bus == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.group != nil || c.closed {
		return
	}
	c.group = c.bus.Group()
	c.group.SubscribeShowAllStickers(func(ev events.ShowAllStickers) {
		c.OnRevealStickersRequested(c.ctx, ev)
	})
	if c.scope.Shared() {
		c.group.SubscribeStickerSent(func(ev events.StickerSent) {
			c.OnStickerEvent(c.ctx, ev)
		})
	}
}

// Close releases the bus subscriptions and empties the store. Results still
// in flight are discarded when they arrive.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.token++
	c.awaiting = false
	group := c.group
	c.group = nil
	c.mu.Unlock()

	if group != nil {
		group.Close()
	}
	c.cancel()

	c.applyMu.Lock()
	c.store.Reset()
	c.applyMu.Unlock()
}

// Wait blocks until every operation started so far has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// OnDateChanged makes day the active date and fetches its month of schedules
// and its pill entries. It returns the token issued for the request.
func (c *Controller) OnDateChanged(ctx context.Context, day schedule.Day) Token {
	c.mu.Lock()
	if c.closed {
		tok := c.token
		c.mu.Unlock()
		return tok
	}
	c.token++
	tok := c.token
	c.day = day
	c.phase = Fetching
	c.mu.Unlock()

	log.Debug("date changed", "token", tok, "day", day, "scope", c.scope)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.fetch(ctx, tok, day)
	}()
	return tok
}

func (c *Controller) fetch(ctx context.Context, tok Token, day schedule.Day) {
	var (
		schedules []schedule.Schedule
		pills     []schedule.PillEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		schedules, err = call(gctx, c.timeout, func(ctx context.Context) ([]schedule.Schedule, error) {
			return c.gw.FetchSchedules(ctx, day, c.scope)
		})
		return err
	})
	g.Go(func() (err error) {
		pills, err = call(gctx, c.timeout, func(ctx context.Context) ([]schedule.PillEntry, error) {
			return c.gw.FetchPillEntries(ctx, day, c.scope)
		})
		return err
	})
	err := g.Wait()

	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if tok != c.token || c.closed {
		c.outcome = StaleDiscarded
		c.mu.Unlock()
		log.Debug("discarding stale result", "token", tok, "err", err)
		return
	}
	c.phase = Idle
	if err != nil {
		c.outcome = Failed
		c.mu.Unlock()
		c.report(fmt.Errorf("controller: fetch %s: %w", day, err))
		return
	}
	snap := c.store.Replace(schedules, pills)
	c.outcome = Applied
	c.mu.Unlock()

	log.Debug("applied result", "token", tok, "generation", snap.Generation, "schedules", len(snap.Schedules))
	c.notify(snap, day)
}

// OnPillChecked marks the slot done ahead of the remote call.
func (c *Controller) OnPillChecked(ctx context.Context, scheduleID int) {
	c.mutate(ctx, scheduleID, true)
}

// OnPillUnchecked only records the request. Nothing changes until
// ConfirmUncheck.
func (c *Controller) OnPillUnchecked(scheduleID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.uncheck = scheduleID
	c.awaiting = true
}

// PendingUncheck returns the slot waiting for confirmation, if any.
func (c *Controller) PendingUncheck() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uncheck, c.awaiting
}

// ConfirmUncheck acts on the pending uncheck. It reports false when there was
// nothing to confirm.
func (c *Controller) ConfirmUncheck(ctx context.Context) bool {
	c.mu.Lock()
	id, ok := c.uncheck, c.awaiting
	c.uncheck, c.awaiting = 0, false
	c.mu.Unlock()
	if !ok {
		return false
	}
	c.mutate(ctx, id, false)
	return true
}

// CancelUncheck drops the pending uncheck.
func (c *Controller) CancelUncheck() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uncheck, c.awaiting = 0, false
}

func (c *Controller) mutate(ctx context.Context, scheduleID int, checked bool) {
	state := schedule.Pending
	if checked {
		state = schedule.Done
	}

	c.applyMu.Lock()
	revert, err := c.store.ToggleCompletion(scheduleID, state)
	if err != nil {
		c.applyMu.Unlock()
		c.report(err)
		return
	}
	c.notifyCurrent()
	c.applyMu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, err := call(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.gw.SetPillChecked(ctx, scheduleID, checked)
		})
		if err != nil {
			c.applyMu.Lock()
			if revert() {
				c.notifyCurrent()
			}
			c.applyMu.Unlock()
			c.report(fmt.Errorf("controller: set schedule %d checked=%t: %w", scheduleID, checked, err))
			return
		}
		c.OnDateChanged(ctx, c.Day())
	}()
}

// OnStickerEvent sends a new reaction, or changes the one the user already
// left, then refreshes the pill list for the active date.
func (c *Controller) OnStickerEvent(ctx context.Context, ev events.StickerSent) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, err := call(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
			if ev.SenderIsLiked {
				return struct{}{}, c.gw.ChangeStickerReaction(ctx, ev.LikeScheduleID, ev.StickerID)
			}
			return struct{}{}, c.gw.SendStickerReaction(ctx, ev.ScheduleID, ev.StickerID)
		})
		if err != nil {
			c.report(fmt.Errorf("controller: %s: %w", ev.Describe(), err))
			return
		}
		c.refreshPills(ctx)
	}()
}

// refreshPills reloads pill entries for the current token without issuing a
// new one; a navigation in the meantime wins.
func (c *Controller) refreshPills(ctx context.Context) {
	c.mu.Lock()
	tok, day := c.token, c.day
	c.mu.Unlock()

	pills, err := call(ctx, c.timeout, func(ctx context.Context) ([]schedule.PillEntry, error) {
		return c.gw.FetchPillEntries(ctx, day, c.scope)
	})

	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if tok != c.token || c.closed {
		c.outcome = StaleDiscarded
		c.mu.Unlock()
		log.Debug("discarding stale pills", "token", tok)
		return
	}
	if err != nil {
		c.outcome = Failed
		c.mu.Unlock()
		c.report(fmt.Errorf("controller: refresh pills %s: %w", day, err))
		return
	}
	snap := c.store.ReplacePills(pills)
	c.outcome = Applied
	c.mu.Unlock()

	c.presenter.OnScheduleListUpdated(snap.Schedules, snap.Pills)
}

// OnRevealStickersRequested fetches every sticker left on a schedule and
// hands them to the presenter. The store is not touched.
func (c *Controller) OnRevealStickersRequested(ctx context.Context, ev events.ShowAllStickers) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		list, err := call(ctx, c.timeout, func(ctx context.Context) ([]schedule.StickerReaction, error) {
			return c.gw.FetchStickers(ctx, ev.ScheduleID)
		})
		if err != nil {
			c.report(fmt.Errorf("controller: %s: %w", ev.Describe(), err))
			return
		}
		c.presenter.OnStickers(ev.ScheduleID, list)
	}()
}

// Day is the active date.
func (c *Controller) Day() schedule.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// Token is the most recently issued token.
func (c *Controller) Token() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) LastOutcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

func (c *Controller) Scope() schedule.Scope {
	return c.scope
}

// Snapshot returns the store contents.
func (c *Controller) Snapshot() cache.Snapshot {
	return c.store.Snapshot()
}

// notifyCurrent pushes the store state to the presenter. Callers hold applyMu.
func (c *Controller) notifyCurrent() {
	c.notify(c.store.Snapshot(), c.Day())
}

func (c *Controller) notify(snap cache.Snapshot, day schedule.Day) {
	c.presenter.OnScheduleListUpdated(snap.Schedules, snap.Pills)
	c.presenter.OnIndexUpdated(snap.Index)
	if c.calendar != nil {
		c.calendar.RenderMonth(day, snap.Index)
	}
}

func (c *Controller) report(err error) {
	if schedule.KindOf(err) == schedule.KindStaleDiscarded {
		return
	}
	log.Error("controller", err, "kind", schedule.KindOf(err))
	c.presenter.OnError(err)
}

// call runs fn with a deadline of timeout. A gateway that ignores its context
// still cannot hold the caller past the deadline.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(cctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		// Past the deadline the result may be cut short, so it counts as a timeout.
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			var zero T
			switch {
			case r.err == nil:
				return zero, schedule.ErrTimeout
			case schedule.KindOf(r.err) != schedule.KindTimeout:
				return zero, fmt.Errorf("%w: %v", schedule.ErrTimeout, r.err)
			}
		}
		return r.v, r.err
	case <-cctx.Done():
		var zero T
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return zero, schedule.ErrTimeout
		}
		return zero, cctx.Err()
	}
}
