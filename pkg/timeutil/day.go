package timeutil

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// ParseOn resolves a --on style date relative to now: "2024-3-1", "3/1",
// "today", "yesterday", "tomorrow", or empty for today.
func ParseOn(v string, now time.Time) (schedule.Day, error) {
	today := schedule.DayOf(now)
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	t, err := time.Parse(layoutISO, strings.TrimSpace(v))
	if err == nil {
		return schedule.DayOf(t), nil
	}
	// Month/day only keeps the current year.
	t, err = time.Parse(layoutISOShort, strings.TrimSpace(v))
	if err != nil {
		return schedule.Day{}, fmt.Errorf("invalid date %q, want YYYY-M-D or M/D", v)
	}
	return schedule.Day{Year: today.Year, Month: t.Month(), Day: t.Day()}, nil
}

// DaysIn returns the number of days in the month of d.
func DaysIn(d schedule.Day) int {
	return time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first of the month of d.
func StartDay(d schedule.Day) time.Weekday {
	return time.Date(d.Year, d.Month, 1, 12, 0, 0, 0, time.UTC).Weekday()
}

// FirstOfMonth returns the first day of the month of d.
func FirstOfMonth(d schedule.Day) schedule.Day {
	return schedule.Day{Year: d.Year, Month: d.Month, Day: 1}
}

// WeekOf returns the seven days of the week containing d, starting on start.
func WeekOf(d schedule.Day, start time.Weekday) []schedule.Day {
	wd := d.Time(time.UTC).Weekday()
	offset := (int(wd) - int(start) + 7) % 7
	first := d.AddDays(-offset)
	days := make([]schedule.Day, 7)
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return days
}
