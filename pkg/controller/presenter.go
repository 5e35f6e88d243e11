package controller

import (
	"tableflip.dev/sobok/pkg/dateindex"
	"tableflip.dev/sobok/pkg/schedule"
)

// Presenter receives the controller's results. The controller holds it as a
// plain back reference and never owns its lifetime. Callbacks run on
// controller goroutines and must not call back into the controller
// synchronously.
type Presenter interface {
	OnIndexUpdated(idx dateindex.Index)
	OnScheduleListUpdated(schedules []schedule.Schedule, pills []schedule.PillEntry)
	OnError(err error)
	OnStickers(scheduleID int, stickers []schedule.StickerReaction)
}

// CalendarRenderer paints the month around day with the index decorations.
type CalendarRenderer interface {
	RenderMonth(day schedule.Day, idx dateindex.Index)
}

type nopPresenter struct{}

func (nopPresenter) OnIndexUpdated(dateindex.Index) {}
func (nopPresenter) OnScheduleListUpdated([]schedule.Schedule, []schedule.PillEntry) {}
func (nopPresenter) OnError(error) {}
func (nopPresenter) OnStickers(int, []schedule.StickerReaction) {}
