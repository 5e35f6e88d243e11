// Package cache holds the schedule state for the active date session. It
// mirrors an informer cache: state lives locally, it is replaced wholesale by
// the sync controller, and readers get consistent copies without touching the
// network.
package cache

import (
	"fmt"
	"sync"

	"tableflip.dev/sobok/pkg/dateindex"
	"tableflip.dev/sobok/pkg/schedule"
)

// Reason tells observers why the cache changed.
type Reason string

const (
	ReasonReplace Reason = "replace"
	ReasonPills   Reason = "pills"
	ReasonToggle  Reason = "toggle"
	ReasonRevert  Reason = "revert"
	ReasonReset   Reason = "reset"
)

// Update is emitted after every mutation.
type Update struct {
	Generation uint64
	Reason     Reason
}

// Snapshot is a consistent copy of the cache. The index is always derived
// from exactly the schedules in the same snapshot.
type Snapshot struct {
	Generation uint64
	Schedules  []schedule.Schedule
	Pills      []schedule.PillEntry
	Index      dateindex.Index
}

// Cache is the schedule store. Only the sync controller mutates it.
type Cache struct {
	mu sync.RWMutex

	// generation increments on Replace and Reset; optimistic reverts are
	// only honoured within the generation they were taken in.
	generation uint64
	// pillGeneration also moves on ReplacePills; a revert leaves pills it
	// did not toggle alone.
	pillGeneration uint64

	schedules []schedule.Schedule
	pills     []schedule.PillEntry
	index     dateindex.Index

	eventCh chan Update
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		index:   dateindex.Classify(nil),
		eventCh: make(chan Update, 64),
	}
}

// Events exposes change notifications. Slow readers miss updates rather than
// block writers.
func (c *Cache) Events() <-chan Update {
	return c.eventCh
}

// Replace swaps in a freshly fetched snapshot and recomputes the index.
func (c *Cache) Replace(schedules []schedule.Schedule, pills []schedule.PillEntry) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.pillGeneration++
	c.schedules = cloneSchedules(schedules)
	c.pills = clonePills(pills)
	c.index = dateindex.Classify(c.schedules)
	c.emit(ReasonReplace)
	return c.snapshotLocked()
}

// ReplacePills swaps only the pill list. Schedules and index are untouched.
func (c *Cache) ReplacePills(pills []schedule.PillEntry) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pillGeneration++
	c.pills = clonePills(pills)
	c.emit(ReasonPills)
	return c.snapshotLocked()
}

// Reset empties the cache at session teardown.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.pillGeneration++
	c.schedules = nil
	c.pills = nil
	c.index = dateindex.Classify(nil)
	c.emit(ReasonReset)
}

// Revert undoes an optimistic toggle. It reports whether anything changed.
type Revert func() bool

// ToggleCompletion sets the completion of scheduleID ahead of remote
// confirmation and mirrors the checked flag onto the pills of that slot. The
// caller owns rollback through the returned Revert. An id absent from the
// current snapshot leaves the cache untouched and returns
// schedule.ErrUnknownScheduleID.
func (c *Cache) ToggleCompletion(scheduleID int, state schedule.Completion) (Revert, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.scheduleIndex(scheduleID)
	if idx < 0 {
		return func() bool { return false }, fmt.Errorf("cache: toggle %d: %w", scheduleID, schedule.ErrUnknownScheduleID)
	}

	prevSchedule := c.schedules[idx]
	prevPills := make(map[int]bool)
	for i := range c.pills {
		if c.pills[i].ScheduleID == scheduleID {
			prevPills[i] = c.pills[i].Checked
			c.pills[i].Checked = state == schedule.Done
		}
	}
	c.schedules[idx].Completion = state
	c.index = dateindex.Classify(c.schedules)
	gen, pillGen := c.generation, c.pillGeneration
	c.emit(ReasonToggle)

	var once sync.Once
	return func() bool {
		reverted := false
		once.Do(func() {
			reverted = c.revert(gen, pillGen, idx, prevSchedule, prevPills)
		})
		return reverted
	}, nil
}

func (c *Cache) revert(gen, pillGen uint64, idx int, prev schedule.Schedule, pills map[int]bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen || idx >= len(c.schedules) || c.schedules[idx].ID != prev.ID {
		return false
	}
	c.schedules[idx] = prev
	if c.pillGeneration != pillGen {
		pills = nil
	}
	for i, checked := range pills {
		if i < len(c.pills) && c.pills[i].ScheduleID == prev.ID {
			c.pills[i].Checked = checked
		}
	}
	c.index = dateindex.Classify(c.schedules)
	c.emit(ReasonRevert)
	return true
}

// Snapshot returns a consistent copy of the current state.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Schedules returns a copy of the current schedules.
func (c *Cache) Schedules() []schedule.Schedule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSchedules(c.schedules)
}

// Pills returns a copy of the current pill entries.
func (c *Cache) Pills() []schedule.PillEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePills(c.pills)
}

// Index returns a copy of the current date index.
func (c *Cache) Index() dateindex.Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Clone()
}

// Lookup returns the schedule with id from the current snapshot.
func (c *Cache) Lookup(id int) (schedule.Schedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.scheduleIndex(id); idx >= 0 {
		return c.schedules[idx], true
	}
	return schedule.Schedule{}, false
}

func (c *Cache) snapshotLocked() Snapshot {
	return Snapshot{
		Generation: c.generation,
		Schedules:  cloneSchedules(c.schedules),
		Pills:      clonePills(c.pills),
		Index:      c.index.Clone(),
	}
}

func (c *Cache) scheduleIndex(id int) int {
	for i := range c.schedules {
		if c.schedules[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) emit(reason Reason) {
	select {
	case c.eventCh <- Update{Generation: c.generation, Reason: reason}:
	default:
	}
}

func cloneSchedules(list []schedule.Schedule) []schedule.Schedule {
	if len(list) == 0 {
		return nil
	}
	return append([]schedule.Schedule(nil), list...)
}

func clonePills(list []schedule.PillEntry) []schedule.PillEntry {
	if len(list) == 0 {
		return nil
	}
	return append([]schedule.PillEntry(nil), list...)
}
