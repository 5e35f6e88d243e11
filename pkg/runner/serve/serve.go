// Package serve runs the schedule API over local storage.
package serve

import (
	"context"
	"errors"

	"tableflip.dev/sobok/pkg/server"
	"tableflip.dev/sobok/pkg/store"
)

type Serve struct {
	Persistence store.Persistence
	Listen      string
	Version     string
}

// Do serves until ctx is cancelled.
func (s *Serve) Do(ctx context.Context) error {
	if s.Listen == "" {
		return errors.New("serve: listen address required")
	}
	return server.New(s.Persistence, s.Version).Run(ctx, s.Listen)
}
