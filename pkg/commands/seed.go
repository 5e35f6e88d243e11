package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/seed"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

func addSeed(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	members := []string{}
	days := 14

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the local store with a demo plan.",
		Example: `
sobok seed
sobok seed --member me --member 187 --days 30 --on 2024-3-1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			if len(members) == 0 {
				members = []string{cfg.Member}
			}
			s := seed.Seed{
				Persistence: p,
				Members:     members,
				From:        from,
				Days:        days,
				Today:       schedule.Today(),
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().StringArrayVarP(&members, "member", "m", members, "Member to seed, repeatable. Defaults to the configured member.")
	cmd.Flags().IntVar(&days, "days", days, "Number of days to seed, starting at --on.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
