// Package card implements the card subcommands. They talk to a running
// pipeline server over HTTP, so moves made here reach open boards through
// the push hub.
package card

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
)

// Cmd returns the card command with all its subcommands
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "card",
		Short:             "Manage pipeline cards",
		PersistentPreRunE: cli.EnsureCLI,
	}

	// Agent-friendly flags
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("quiet", false, "Minimal output (ID only)")

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(StatsCmd())

	return cmd
}
