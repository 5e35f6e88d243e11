// Package uncheck reverts a taken slot after confirmation.
package uncheck

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type Uncheck struct {
	Gateway    gateway.Gateway
	On         schedule.Day
	ScheduleID int
	Timeout    time.Duration
	ShowID     bool
	Out        io.Writer

	// Confirm asks whether to go ahead. A nil Confirm assumes yes.
	Confirm func(s schedule.Schedule) (bool, error)
}

func (u *Uncheck) Do(ctx context.Context) error {
	collect := &printers.Collector{}
	sess, err := session.Open(u.Gateway, schedule.Self(), u.Timeout, collect, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load(ctx, u.On)
	if err := collect.Err(); err != nil {
		return err
	}
	sc, err := sess.Lookup(u.ScheduleID)
	if err != nil {
		return err
	}

	c := sess.Controller
	c.OnPillUnchecked(u.ScheduleID)

	ok := true
	if u.Confirm != nil {
		if ok, err = u.Confirm(sc); err != nil {
			c.CancelUncheck()
			return err
		}
	}
	if !ok {
		c.CancelUncheck()
		_, _ = color.New(color.Faint).Fprintln(out(u.Out), "left unchanged")
		return nil
	}

	if !c.ConfirmUncheck(ctx) {
		return fmt.Errorf("uncheck %d: nothing pending", u.ScheduleID)
	}
	c.Wait()

	collect.FlushList(&printers.PrettyPrint{Out: u.Out, ShowID: u.ShowID})
	return collect.Err()
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
