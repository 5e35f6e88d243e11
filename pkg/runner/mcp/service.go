package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/sobok/pkg/events"
	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

// Service runs the same controller flows as the CLI verbs and hands back the
// settled state instead of printing it.
type Service struct {
	Gateway gateway.Gateway
	Timeout time.Duration
}

// DayView is one settled day as seen from a scope.
type DayView struct {
	Date      schedule.Day         `json:"date"`
	Scope     string               `json:"scope"`
	Schedules []schedule.Schedule  `json:"schedules"`
	Pills     []schedule.PillEntry `json:"pills"`
	Doing     []schedule.Day       `json:"doing"`
	Done      []schedule.Day       `json:"done"`
}

func NewService(gw gateway.Gateway, timeout time.Duration) *Service {
	return &Service{Gateway: gw, Timeout: timeout}
}

func (s *Service) open(ctx context.Context, scope schedule.Scope, day schedule.Day) (*session.Session, *printers.Collector, error) {
	collect := &printers.Collector{}
	sess, err := session.Open(s.Gateway, scope, s.Timeout, collect, nil)
	if err != nil {
		return nil, nil, err
	}
	if day.IsZero() {
		return sess, collect, nil
	}
	sess.Load(ctx, day)
	if err := collect.Err(); err != nil {
		sess.Close()
		return nil, nil, err
	}
	return sess, collect, nil
}

func view(day schedule.Day, scope schedule.Scope, collect *printers.Collector) *DayView {
	schedules, pills, idx, _ := collect.List()
	return &DayView{
		Date:      day,
		Scope:     scope.String(),
		Schedules: schedules,
		Pills:     pills,
		Doing:     idx.DoingDays(),
		Done:      idx.DoneDays(),
	}
}

// Day loads day for scope.
func (s *Service) Day(ctx context.Context, scope schedule.Scope, day schedule.Day) (*DayView, error) {
	sess, collect, err := s.open(ctx, scope, day)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	return view(day, scope, collect), nil
}

// Check marks one of your own slots on day as taken.
func (s *Service) Check(ctx context.Context, day schedule.Day, id int) (*DayView, error) {
	sess, collect, err := s.open(ctx, schedule.Self(), day)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	if _, err := sess.Lookup(id); err != nil {
		return nil, err
	}

	sess.Controller.OnPillChecked(ctx, id)
	sess.Controller.Wait()
	if err := collect.Err(); err != nil {
		return nil, err
	}
	return view(day, schedule.Self(), collect), nil
}

// Uncheck takes a slot back. Calling the tool is the confirmation.
func (s *Service) Uncheck(ctx context.Context, day schedule.Day, id int) (*DayView, error) {
	sess, collect, err := s.open(ctx, schedule.Self(), day)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	if _, err := sess.Lookup(id); err != nil {
		return nil, err
	}

	c := sess.Controller
	c.OnPillUnchecked(id)
	if !c.ConfirmUncheck(ctx) {
		return nil, fmt.Errorf("uncheck %d: nothing pending", id)
	}
	c.Wait()
	if err := collect.Err(); err != nil {
		return nil, err
	}
	return view(day, schedule.Self(), collect), nil
}

// Stickers reveals every reaction on a schedule.
func (s *Service) Stickers(ctx context.Context, scope schedule.Scope, id int) ([]schedule.StickerReaction, error) {
	sess, collect, err := s.open(ctx, scope, schedule.Day{})
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	sess.Bus.Publish(events.TopicShowAllStickers, events.ShowAllStickers{ScheduleID: id})
	sess.Controller.Wait()
	if err := collect.Err(); err != nil {
		return nil, err
	}
	return collect.Stickers(id), nil
}

// React leaves sticker on a member's schedule, changing the reaction you
// already left there if there is one.
func (s *Service) React(ctx context.Context, member string, day schedule.Day, id, sticker int) (*DayView, error) {
	if member == "" {
		return nil, errors.New("stickers go on another member's schedule, member is required")
	}
	scope := schedule.Member(member)
	sess, collect, err := s.open(ctx, scope, day)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	if _, err := sess.Lookup(id); err != nil {
		return nil, err
	}

	ev := events.StickerSent{ScheduleID: id, StickerID: sticker}
	if p, ok := sess.Pill(id); ok && p.IsLiked {
		ev.SenderIsLiked, ev.LikeScheduleID = true, p.LikeScheduleID
	}
	sess.Bus.Publish(events.TopicStickerSent, ev)
	sess.Controller.Wait()
	if err := collect.Err(); err != nil {
		return nil, err
	}
	return view(day, scope, collect), nil
}
