package printers

import (
	"errors"
	"sync"

	"tableflip.dev/sobok/pkg/dateindex"
	"tableflip.dev/sobok/pkg/schedule"
)

// Collector keeps the latest controller results so one-shot commands can
// print the settled state once instead of every intermediate update.
type Collector struct {
	mu sync.Mutex

	schedules []schedule.Schedule
	pills     []schedule.PillEntry
	index     dateindex.Index
	listed    bool
	month     schedule.Day
	errs      []error
	stickers  map[int][]schedule.StickerReaction
}

func (c *Collector) OnIndexUpdated(idx dateindex.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = idx
}

func (c *Collector) OnScheduleListUpdated(schedules []schedule.Schedule, pills []schedule.PillEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedules, c.pills, c.listed = schedules, pills, true
}

func (c *Collector) OnError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func (c *Collector) OnStickers(scheduleID int, list []schedule.StickerReaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stickers == nil {
		c.stickers = make(map[int][]schedule.StickerReaction)
	}
	c.stickers[scheduleID] = list
}

func (c *Collector) RenderMonth(day schedule.Day, idx dateindex.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month, c.index = day, idx
}

// Errors returns every error reported so far.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Err joins every reported error, or is nil.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(c.errs...)
}

// FlushList prints the latest pill list.
func (c *Collector) FlushList(pp *PrettyPrint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listed {
		pp.OnScheduleListUpdated(c.schedules, c.pills)
	}
}

// FlushCalendar prints the latest month.
func (c *Collector) FlushCalendar(pp *PrettyPrint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.month.IsZero() {
		pp.RenderMonth(c.month, c.index)
		pp.OnIndexUpdated(c.index)
	}
}

// FlushWeek prints the week around the latest day.
func (c *Collector) FlushWeek(pp *PrettyPrint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.month.IsZero() {
		pp.RenderWeek(c.month, c.index)
	}
}

// FlushStickers prints the stickers collected for every schedule.
func (c *Collector) FlushStickers(pp *PrettyPrint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, list := range c.stickers {
		pp.OnStickers(id, list)
	}
}

// List returns the latest pill list and index, and whether one arrived.
func (c *Collector) List() ([]schedule.Schedule, []schedule.PillEntry, dateindex.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schedules, c.pills, c.index, c.listed
}

// Stickers returns what was revealed for scheduleID.
func (c *Collector) Stickers(scheduleID int) []schedule.StickerReaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stickers[scheduleID]
}
