package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/runner/serve"
	"tableflip.dev/sobok/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	listen := ""

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local store over HTTP for other sobok clients.",
		Example: `
sobok serve
sobok serve --listen :8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := serve.Serve{
				Persistence: p,
				Listen:      cfg.Listen,
				Version:     version,
			}
			return s.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on, overrides the configured one.")
	topLevel.AddCommand(cmd)
}
