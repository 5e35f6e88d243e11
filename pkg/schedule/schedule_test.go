package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)
	night := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)
	if DayOf(morning) != DayOf(night) {
		t.Fatalf("expected same day, got %v and %v", DayOf(morning), DayOf(night))
	}
	if got := DayOf(morning).String(); got != "2024-03-01" {
		t.Fatalf("unexpected day string %q", got)
	}
}

func TestDayAddDaysCrossesMonth(t *testing.T) {
	d := Day{Year: 2024, Month: time.February, Day: 28}
	if got := d.AddDays(2); got != (Day{Year: 2024, Month: time.March, Day: 1}) {
		t.Fatalf("expected 2024-03-01, got %v", got)
	}
	if got := d.AddDays(-28); got != (Day{Year: 2024, Month: time.January, Day: 31}) {
		t.Fatalf("expected 2024-01-31, got %v", got)
	}
}

func TestDayJSON(t *testing.T) {
	d := Day{Year: 2024, Month: time.March, Day: 1}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-01"` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var back Day
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("expected %v, got %v", d, back)
	}
	if err := json.Unmarshal([]byte(`"March 1"`), &back); err == nil {
		t.Fatalf("expected error for malformed day")
	}
}

func TestParseCompletionRejectsUnknown(t *testing.T) {
	if _, err := ParseCompletion("finished"); err == nil {
		t.Fatalf("expected error")
	}
	c, err := ParseCompletion(" DONE ")
	if err != nil || c != Done {
		t.Fatalf("expected done, got %q (%v)", c, err)
	}
	var s Schedule
	if err := json.Unmarshal([]byte(`{"scheduleId":1,"isComplete":"nope"}`), &s); err == nil {
		t.Fatalf("expected decode error for unknown completion")
	}
}

func TestGroupBySlot(t *testing.T) {
	pills := []PillEntry{
		{ID: 1, Name: "b", TimeSlot: "20:00"},
		{ID: 2, Name: "a", TimeSlot: "08:00"},
		{ID: 3, Name: "c", TimeSlot: "20:00"},
	}
	groups := GroupBySlot(pills)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].TimeSlot != "08:00" || groups[1].TimeSlot != "20:00" {
		t.Fatalf("unexpected slot order %q, %q", groups[0].TimeSlot, groups[1].TimeSlot)
	}
	if len(groups[1].Pills) != 2 || groups[1].Pills[0].ID != 1 || groups[1].Pills[1].ID != 3 {
		t.Fatalf("expected evening pills in incoming order, got %+v", groups[1].Pills)
	}
}

func TestScopeValidate(t *testing.T) {
	if err := Member(" ").Validate(); err == nil {
		t.Fatalf("expected error for member scope without id")
	}
	if err := Self().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Member("187").Resolve("me"); got != "187" {
		t.Fatalf("expected member id, got %q", got)
	}
	if got := Self().Resolve("me"); got != "me" {
		t.Fatalf("expected self id, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{fmt.Errorf("fetch: %w", ErrNetworkUnavailable), KindNetworkUnavailable},
		{&RemoteError{Status: 500}, KindRemoteRejected},
		{fmt.Errorf("fetch: %w", context.DeadlineExceeded), KindTimeout},
		{fmt.Errorf("toggle: %w", ErrUnknownScheduleID), KindUnknownScheduleID},
		{ErrStaleDiscarded, KindStaleDiscarded},
		{fmt.Errorf("other"), KindUnknown},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
