package card

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Args:  cobra.NoArgs,
		RunE:  runDelete,
	}

	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	id, _ := cmd.Flags().GetString("id")
	if err := instance.Client.DeleteCard(cmd.Context(), id); err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(map[string]string{"id": id})
	}
	return formatter.Message("✓ Deleted card %s", id)
}
