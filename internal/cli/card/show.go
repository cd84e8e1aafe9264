package card

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one card",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	id, _ := cmd.Flags().GetString("id")
	card, err := instance.Client.Card(cmd.Context(), id)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(card)
}
