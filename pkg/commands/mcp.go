package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	httpAddr := ""
	path := "/mcp"

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the pill schedule tools to an MCP client, over stdio or HTTP.",
		Example: `
sobok mcp
sobok mcp --http 127.0.0.1:8081
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			gw, cfg, err := connect()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := mcp.Runner{
				Gateway:          gw,
				Timeout:          cfg.Timeout,
				Version:          version,
				Transport:        mcp.TransportStdio,
				HTTPListenAddr:   httpAddr,
				HTTPEndpointPath: path,
			}
			if httpAddr != "" {
				r.Transport = mcp.TransportHTTP
			}
			return r.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio.")
	cmd.Flags().StringVar(&path, "path", path, "HTTP endpoint path.")
	topLevel.AddCommand(cmd)
}
