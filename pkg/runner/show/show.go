// Package show prints the pills of one day.
package show

import (
	"context"
	"fmt"
	"io"
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/printers"
	"tableflip.dev/sobok/pkg/runner/session"
	"tableflip.dev/sobok/pkg/schedule"
)

type Show struct {
	Gateway gateway.Gateway
	Scope   schedule.Scope
	On      schedule.Day
	Timeout time.Duration
	ShowID  bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	collect := &printers.Collector{}
	sess, err := session.Open(s.Gateway, s.Scope, s.Timeout, collect, collect)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Load(ctx, s.On)
	if err := collect.Err(); err != nil {
		return err
	}

	pp := &printers.PrettyPrint{Out: s.Out, ShowID: s.ShowID}
	title := s.On.Time(time.Local).Format("Monday, January 2, 2006")
	if s.Scope.Shared() {
		title = fmt.Sprintf("%s (%s)", title, s.Scope.MemberID)
	}
	pp.Title(title)
	collect.FlushList(pp)
	return nil
}
