// Package check marks a schedule slot as taken.
package check

import (
	"context"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type Check struct {
	Gateway    gateway.Gateway
	On         schedule.Day
	ScheduleID int
	Timeout    time.Duration
	ShowID     bool
	Out        io.Writer
}

func (c *Check) Do(ctx context.Context) error {
	collect := &printers.Collector{}
	sess, err := session.Open(c.Gateway, schedule.Self(), c.Timeout, collect, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load(ctx, c.On)
	if err := collect.Err(); err != nil {
		return err
	}
	if _, err := sess.Lookup(c.ScheduleID); err != nil {
		return err
	}

	sess.Controller.OnPillChecked(ctx, c.ScheduleID)
	sess.Controller.Wait()

	collect.FlushList(&printers.PrettyPrint{Out: c.Out, ShowID: c.ShowID})
	return collect.Err()
}
