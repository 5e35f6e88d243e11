// Package schedule holds the domain records shared by the sync engine: pill
// intake schedules, the pills grouped under them, sticker reactions and the
// scope (own schedule or a shared member's) a view is looking at.
package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Completion is the intake state of one schedule slot.
type Completion string

const (
	Pending Completion = "pending"
	Doing   Completion = "doing"
	Done    Completion = "done"
)

// ParseCompletion maps the wire form to a Completion.
func ParseCompletion(v string) (Completion, error) {
	switch c := Completion(strings.ToLower(strings.TrimSpace(v))); c {
	case Pending, Doing, Done:
		return c, nil
	case "":
		return Pending, nil
	default:
		return "", fmt.Errorf("schedule: unknown completion %q", v)
	}
}

// UnmarshalJSON rejects unknown completion values.
func (c *Completion) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCompletion(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Schedule is one pill-intake slot on one date. Records are immutable once
// fetched and get replaced wholesale by the next fetch.
type Schedule struct {
	ID         int        `json:"scheduleId"`
	MemberID   string     `json:"memberId,omitempty"`
	Date       time.Time  `json:"scheduleDate"`
	TimeSlot   string     `json:"scheduleTime,omitempty"`
	Completion Completion `json:"isComplete"`
}

// Day returns the calendar day the schedule belongs to.
func (s Schedule) Day() Day {
	return DayOf(s.Date)
}

// PillEntry is a pill listed for the active date and member.
type PillEntry struct {
	ID             int    `json:"pillId"`
	ScheduleID     int    `json:"scheduleId"`
	Name           string `json:"pillName"`
	TimeSlot       string `json:"scheduleTime"`
	MemberID       string `json:"memberId,omitempty"`
	Checked        bool   `json:"isCheck"`
	StickerCount   int    `json:"stickerTotalCount,omitempty"`
	IsLiked        bool   `json:"isLikedSchedule,omitempty"`
	LikeScheduleID int    `json:"likeScheduleId,omitempty"`
}

// StickerReaction is a sticker one user left on another user's schedule.
type StickerReaction struct {
	ScheduleID     int       `json:"scheduleId"`
	LikeScheduleID int       `json:"likeScheduleId"`
	StickerID      int       `json:"stickerId"`
	SenderIsLiked  bool      `json:"isLikedState"`
	SenderName     string    `json:"username,omitempty"`
	Created        time.Time `json:"createdAt,omitempty"`
}

// SlotGroup is the pills of one time slot, in display order.
type SlotGroup struct {
	TimeSlot string
	Pills    []PillEntry
}

// GroupBySlot groups pills by time slot, slots ordered ascending and pills
// kept in their incoming order.
func GroupBySlot(pills []PillEntry) []SlotGroup {
	if len(pills) == 0 {
		return nil
	}
	index := make(map[string]int)
	groups := make([]SlotGroup, 0)
	for _, p := range pills {
		idx, ok := index[p.TimeSlot]
		if !ok {
			idx = len(groups)
			index[p.TimeSlot] = idx
			groups = append(groups, SlotGroup{TimeSlot: p.TimeSlot})
		}
		groups[idx].Pills = append(groups[idx].Pills, p)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TimeSlot < groups[j].TimeSlot
	})
	return groups
}
