// Package seed fills local storage with a week of sample schedules.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

type slotPlan struct {
	hour  int
	slot  string
	pills []string
}

var plan = []slotPlan{
	{hour: 8, slot: "08:00", pills: []string{"Vitamin D", "Omega 3"}},
	{hour: 13, slot: "13:00", pills: []string{"Iron"}},
	{hour: 21, slot: "21:00", pills: []string{"Magnesium"}},
}

type Seed struct {
	Persistence store.Persistence
	// Members get the same plan each.
	Members []string
	// From is the first seeded day; Days counts forward from it.
	From schedule.Day
	Days int
	// Today decides which seeded slots are already taken: every slot before
	// it, and the morning slot of Today itself.
	Today schedule.Day
	Out   io.Writer
}

func (s *Seed) Do(ctx context.Context) error {
	if s.Days <= 0 {
		return fmt.Errorf("seed: days must be positive, got %d", s.Days)
	}
	slots := 0
	for _, member := range s.Members {
		for i := 0; i < s.Days; i++ {
			day := s.From.AddDays(i)
			for j, p := range plan {
				r := &store.ScheduleRecord{
					MemberID: member,
					Date:     time.Date(day.Year, day.Month, day.Day, p.hour, 0, 0, 0, time.Local),
					TimeSlot: p.slot,
				}
				if err := s.Persistence.PutSchedule(r); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				for _, name := range p.pills {
					if err := s.Persistence.PutPill(&store.PillRecord{
						ScheduleID: r.ID,
						MemberID:   member,
						Name:       name,
						TimeSlot:   p.slot,
					}); err != nil {
						return fmt.Errorf("seed: %w", err)
					}
				}
				if day.Before(s.Today) || (day == s.Today && j == 0) {
					if err := s.Persistence.SetChecked(ctx, r.ID, true); err != nil {
						return fmt.Errorf("seed: %w", err)
					}
				}
				slots++
			}
		}
	}

	out := s.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "seeded %d slots for %d members\n", slots, len(s.Members))
	return nil
}
