package store

import (
	"time"

	"tableflip.dev/sobok/pkg/schedule"
)

// Record kinds double as the top-level directory of each record on disk.
const (
	KindSchedule = "schedule"
	KindPill     = "pill"
	KindLike     = "like"
)

// ScheduleRecord is one intake slot of one member on one day. Its completion
// is derived from the pills stored under it.
type ScheduleRecord struct {
	ID       int       `json:"id"`
	MemberID string    `json:"member"`
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"slot"`
}

// PillRecord is a pill to take in a schedule slot.
type PillRecord struct {
	ID         int    `json:"id"`
	ScheduleID int    `json:"schedule"`
	MemberID   string `json:"member"`
	Name       string `json:"name"`
	TimeSlot   string `json:"slot"`
	Checked    bool   `json:"checked,omitempty"`
}

// LikeRecord is a sticker one member left on another member's schedule.
type LikeRecord struct {
	ID         int       `json:"id"`
	ScheduleID int       `json:"schedule"`
	SenderID   string    `json:"sender"`
	SenderName string    `json:"senderName,omitempty"`
	StickerID  int       `json:"sticker"`
	Created    time.Time `json:"created"`
}

// completionOf derives slot completion: every pill checked is done, some
// checked is doing, none checked is pending.
func completionOf(pills []*PillRecord) schedule.Completion {
	checked := 0
	for _, p := range pills {
		if p.Checked {
			checked++
		}
	}
	switch {
	case len(pills) > 0 && checked == len(pills):
		return schedule.Done
	case checked > 0:
		return schedule.Doing
	default:
		return schedule.Pending
	}
}
