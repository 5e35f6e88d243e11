// Package stickers reveals every sticker left on a schedule.
package stickers

import (
	"context"
	"fmt"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/events"
	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type Stickers struct {
	Gateway    gateway.Gateway
	Scope      schedule.Scope
	ScheduleID int
	Timeout    time.Duration
	Out        io.Writer
}

func (s *Stickers) Do(ctx context.Context) error {
	collect := &printers.Collector{}
	sess, err := session.Open(s.Gateway, s.Scope, s.Timeout, collect, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	d := sess.Bus.Publish(events.TopicShowAllStickers, events.ShowAllStickers{ScheduleID: s.ScheduleID})
	if d.Invoked == 0 {
		return fmt.Errorf("no one is listening for %s", events.TopicShowAllStickers)
	}
	sess.Controller.Wait()
	if err := collect.Err(); err != nil {
		return err
	}

	collect.FlushStickers(&printers.PrettyPrint{Out: s.Out})
	return nil
}
