// Package cmd holds the funil command tree
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli/card"
	"github.com/thenoetrevino/funil/internal/cli/clients"
	"github.com/thenoetrevino/funil/internal/cli/tutorial"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/logging"
)

// NewRootCmd builds the funil command tree. Running funil without a
// subcommand opens the board.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "funil",
		Short: "Funil - a terminal sales pipeline board",
		Long: `Funil is a terminal kanban board for a sales pipeline.

Cards are deals that move through five stages. Drag them on the board
with the keyboard, or script them with the card subcommands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBoard,
	}

	rootCmd.AddCommand(BoardCmd())
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(NotifyCmd())
	rootCmd.AddCommand(card.Cmd())
	rootCmd.AddCommand(clients.Cmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())

	return rootCmd
}

// Execute runs the command tree with file logging set up for the run
func Execute(ctx context.Context) error {
	level := ""
	if cfg, err := config.Load(); err == nil {
		level = cfg.Log.Level
	}

	closeLog, err := logging.Init(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	} else {
		defer func() { _ = closeLog() }()
	}

	return NewRootCmd().ExecuteContext(ctx)
}
