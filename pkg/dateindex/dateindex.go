// Package dateindex derives calendar decorations from schedule records.
package dateindex

import (
	"sort"

	"tableflip.dev/sobok/pkg/schedule"
)

// Status is the decoration a calendar day receives.
type Status int

const (
	None Status = iota
	InProgress
	Complete
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "doing"
	case Complete:
		return "done"
	default:
		return "none"
	}
}

// Index partitions days into those fully done and those in progress. The two
// sets never overlap.
type Index struct {
	Doing map[schedule.Day]struct{}
	Done  map[schedule.Day]struct{}
}

// Classify builds the index for schedules. A day is done when every schedule
// on it is done, doing when at least one is doing or done but not all are
// done, and absent otherwise.
func Classify(schedules []schedule.Schedule) Index {
	type tally struct {
		total   int
		done    int
		started int
	}
	perDay := make(map[schedule.Day]*tally)
	for _, s := range schedules {
		day := s.Day()
		t := perDay[day]
		if t == nil {
			t = &tally{}
			perDay[day] = t
		}
		t.total++
		switch s.Completion {
		case schedule.Done:
			t.done++
			t.started++
		case schedule.Doing:
			t.started++
		}
	}

	idx := Index{
		Doing: make(map[schedule.Day]struct{}),
		Done:  make(map[schedule.Day]struct{}),
	}
	for day, t := range perDay {
		switch {
		case t.done == t.total:
			idx.Done[day] = struct{}{}
		case t.started > 0:
			idx.Doing[day] = struct{}{}
		}
	}
	return idx
}

// Status returns the decoration for day.
func (idx Index) Status(day schedule.Day) Status {
	if _, ok := idx.Done[day]; ok {
		return Complete
	}
	if _, ok := idx.Doing[day]; ok {
		return InProgress
	}
	return None
}

// DoingDays lists in-progress days in ascending order.
func (idx Index) DoingDays() []schedule.Day {
	return sortedDays(idx.Doing)
}

// DoneDays lists completed days in ascending order.
func (idx Index) DoneDays() []schedule.Day {
	return sortedDays(idx.Done)
}

// Empty reports whether no day carries a decoration.
func (idx Index) Empty() bool {
	return len(idx.Doing) == 0 && len(idx.Done) == 0
}

// Equal reports whether both indexes decorate the same days the same way.
func (idx Index) Equal(other Index) bool {
	return sameSet(idx.Doing, other.Doing) && sameSet(idx.Done, other.Done)
}

// Clone returns a deep copy.
func (idx Index) Clone() Index {
	out := Index{
		Doing: make(map[schedule.Day]struct{}, len(idx.Doing)),
		Done:  make(map[schedule.Day]struct{}, len(idx.Done)),
	}
	for d := range idx.Doing {
		out.Doing[d] = struct{}{}
	}
	for d := range idx.Done {
		out.Done[d] = struct{}{}
	}
	return out
}

func sortedDays(set map[schedule.Day]struct{}) []schedule.Day {
	if len(set) == 0 {
		return nil
	}
	days := make([]schedule.Day, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

func sameSet(a, b map[schedule.Day]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if _, ok := b[d]; !ok {
			return false
		}
	}
	return true
}
