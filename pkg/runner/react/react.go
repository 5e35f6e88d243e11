// Package react leaves a sticker on a shared member's schedule.
package react

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/events"
	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type React struct {
	Gateway    gateway.Gateway
	Member     string
	On         schedule.Day
	ScheduleID int
	StickerID  int
	// LikeID forces a change of an existing reaction. Zero looks it up.
	LikeID  int
	Timeout time.Duration
	ShowID  bool
	Out     io.Writer
}

func (r *React) Do(ctx context.Context) error {
	if r.Member == "" {
		return errors.New("stickers go on another member's schedule, set --member")
	}

	collect := &printers.Collector{}
	sess, err := session.Open(r.Gateway, schedule.Member(r.Member), r.Timeout, collect, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load(ctx, r.On)
	if err := collect.Err(); err != nil {
		return err
	}
	if _, err := sess.Lookup(r.ScheduleID); err != nil {
		return err
	}

	ev := events.StickerSent{ScheduleID: r.ScheduleID, StickerID: r.StickerID}
	if r.LikeID != 0 {
		ev.SenderIsLiked, ev.LikeScheduleID = true, r.LikeID
	} else if p, ok := sess.Pill(r.ScheduleID); ok && p.IsLiked {
		ev.SenderIsLiked, ev.LikeScheduleID = true, p.LikeScheduleID
	}

	sess.Bus.Publish(events.TopicStickerSent, ev)
	sess.Controller.Wait()

	collect.FlushList(&printers.PrettyPrint{Out: r.Out, ShowID: r.ShowID})
	return collect.Err()
}
