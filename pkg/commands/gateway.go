package commands

import (
	"time"

	"tableflip.dev/sobok/pkg/gateway"
	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/store"
)

const (
	remoteAttempts = 3
	remoteBackoff  = 200 * time.Millisecond
)

// connect picks the remote server when one is configured and the local
// store otherwise.
func connect() (gateway.Gateway, *store.Settings, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Remote != "" {
		log.Debug("using remote gateway", "remote", cfg.Remote, "member", cfg.Member)
		h := gateway.NewHTTP(cfg.Remote, cfg.Member, cfg.MemberName, cfg.Timeout)
		return gateway.WithRetry(h, remoteAttempts, remoteBackoff), cfg, nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("using local store", "path", cfg.Path, "member", cfg.Member)
	return gateway.NewLocal(p, cfg.Member, cfg.MemberName), cfg, nil
}
