package dateindex

import (
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
)

var (
	d1 = schedule.Day{Year: 2024, Month: time.March, Day: 1}
	d2 = schedule.Day{Year: 2024, Month: time.March, Day: 2}
)

func at(day schedule.Day, hour int) time.Time {
	return time.Date(day.Year, day.Month, day.Day, hour, 0, 0, 0, time.UTC)
}

func sched(id int, day schedule.Day, hour int, c schedule.Completion) schedule.Schedule {
	return schedule.Schedule{ID: id, Date: at(day, hour), Completion: c}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		in        []schedule.Schedule
		wantDoing []schedule.Day
		wantDone  []schedule.Day
	}{{
		name:     "all done",
		in:       []schedule.Schedule{sched(1, d1, 8, schedule.Done), sched(2, d1, 20, schedule.Done)},
		wantDone: []schedule.Day{d1},
	}, {
		name:      "done and doing",
		in:        []schedule.Schedule{sched(1, d1, 8, schedule.Done), sched(2, d1, 20, schedule.Doing)},
		wantDoing: []schedule.Day{d1},
	}, {
		name: "pending only",
		in:   []schedule.Schedule{sched(1, d1, 8, schedule.Pending)},
	}, {
		name:      "done and pending",
		in:        []schedule.Schedule{sched(1, d1, 8, schedule.Done), sched(2, d1, 20, schedule.Pending)},
		wantDoing: []schedule.Day{d1},
	}, {
		name:      "days are independent",
		in:        []schedule.Schedule{sched(1, d1, 8, schedule.Done), sched(2, d2, 8, schedule.Doing), sched(3, d2, 9, schedule.Pending)},
		wantDoing: []schedule.Day{d2},
		wantDone:  []schedule.Day{d1},
	}, {
		name: "empty",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx := Classify(tc.in)
			assertDays(t, "doing", idx.DoingDays(), tc.wantDoing)
			assertDays(t, "done", idx.DoneDays(), tc.wantDone)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	in := []schedule.Schedule{
		sched(1, d1, 8, schedule.Done),
		sched(2, d1, 20, schedule.Doing),
		sched(3, d2, 8, schedule.Done),
	}
	before := append([]schedule.Schedule(nil), in...)
	first := Classify(in)
	second := Classify(in)
	if !first.Equal(second) {
		t.Fatalf("expected identical indexes, got %v and %v", first, second)
	}
	for i := range in {
		if in[i] != before[i] {
			t.Fatalf("input mutated at %d: %+v", i, in[i])
		}
	}
}

func TestStatus(t *testing.T) {
	idx := Classify([]schedule.Schedule{sched(1, d1, 8, schedule.Done), sched(2, d2, 8, schedule.Doing)})
	if got := idx.Status(d1); got != Complete {
		t.Fatalf("expected done for d1, got %v", got)
	}
	if got := idx.Status(d2); got != InProgress {
		t.Fatalf("expected doing for d2, got %v", got)
	}
	if got := idx.Status(d2.AddDays(1)); got != None {
		t.Fatalf("expected none, got %v", got)
	}
}

func assertDays(t *testing.T, label string, got, want []schedule.Day) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", label, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got %v", label, want, got)
		}
	}
}
