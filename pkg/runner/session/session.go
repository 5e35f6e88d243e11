// Package session wires a sync controller for the lifetime of one command.
package session

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/sobok/pkg/cache"
	"tableflip.dev/sobok/pkg/controller"
	"tableflip.dev/sobok/pkg/events"
	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/schedule"
)

// Session owns a controller, its store and the bus it listens on.
type Session struct {
	Controller *controller.Controller
	Bus        *events.Bus
	Store      *cache.Cache
}

// Open creates and attaches a controller. Callers must Close the session.
func Open(gw gateway.Gateway, scope schedule.Scope, timeout time.Duration, p controller.Presenter, cal controller.CalendarRenderer) (*Session, error) {
	s := &Session{
		Bus:   events.NewBus(),
		Store: cache.New(),
	}
	c, err := controller.New(gw, s.Store, s.Bus, controller.Options{
		Scope:        scope,
		FetchTimeout: timeout,
		Presenter:    p,
		Calendar:     cal,
	})
	if err != nil {
		return nil, err
	}
	c.Attach()
	s.Controller = c
	return s, nil
}

// Load fetches day and waits for the result to settle.
func (s *Session) Load(ctx context.Context, day schedule.Day) {
	s.Controller.OnDateChanged(ctx, day)
	s.Controller.Wait()
}

// Lookup finds a schedule of the loaded day by id.
func (s *Session) Lookup(id int) (schedule.Schedule, error) {
	sc, ok := s.Store.Lookup(id)
	if !ok {
		return schedule.Schedule{}, fmt.Errorf("schedule %d is not on %s: %w", id, s.Controller.Day(), schedule.ErrUnknownScheduleID)
	}
	return sc, nil
}

// Pill returns the first pill entry of schedule id.
func (s *Session) Pill(id int) (schedule.PillEntry, bool) {
	for _, p := range s.Store.Pills() {
		if p.ScheduleID == id {
			return p, true
		}
	}
	return schedule.PillEntry{}, false
}

// Close waits for in-flight work and releases the controller.
func (s *Session) Close() {
	s.Controller.Wait()
	s.Controller.Close()
}
