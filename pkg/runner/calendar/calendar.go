// Package calendar prints the month or week grid around a day.
package calendar

import (
	"context"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type Calendar struct {
	Gateway gateway.Gateway
	Scope   schedule.Scope
	On      schedule.Day
	Timeout time.Duration
	Week    bool
	Legend  bool
	Out     io.Writer
}

func (c *Calendar) Do(ctx context.Context) error {
	collect := &printers.Collector{}
	sess, err := session.Open(c.Gateway, c.Scope, c.Timeout, collect, collect)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load(ctx, c.On)
	if err := collect.Err(); err != nil {
		return err
	}

	pp := &printers.PrettyPrint{Out: c.Out}
	if c.Week {
		collect.FlushWeek(pp)
	} else {
		collect.FlushCalendar(pp)
	}
	if c.Legend {
		pp.Legend()
	}
	return nil
}
