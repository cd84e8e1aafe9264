package card

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
)

// StatsCmd returns the card stats subcommand
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show card counts per column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, instance, err := cli.Setup(cmd)
			if err != nil {
				return err
			}
			defer instance.Close()

			stats, err := instance.Client.Stats(cmd.Context())
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(stats)
		},
	}
}
