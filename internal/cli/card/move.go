package card

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/models"
)

// errMoveRejected is returned when the server answers success:false
var errMoveRejected = errors.New("move rejected by server")

// moveOutput is what a successful move reports
type moveOutput struct {
	ID   string        `json:"id"`
	From models.Column `json:"from"`
	To   models.Column `json:"to"`
}

// GetID returns the moved card's ID for quiet mode
func (m moveOutput) GetID() string {
	return m.ID
}

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <target>",
		Short: "Move a card to another column",
		Long: `Move a card to another column by direction or column name.
The card is appended to the end of the target column.

Examples:
  # Move to next column
  funil card move --id 7c1e... next

  # Move to previous column
  funil card move --id 7c1e... prev

  # Move to specific column by id or title (case-insensitive)
  funil card move --id 7c1e... venda_concluida
  funil card move --id 7c1e... "venda concluída"
`,
		RunE: runMove,
		Args: cobra.ExactArgs(1),
	}

	// Required flags
	cmd.Flags().String("id", "", "Card ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	ctx := cmd.Context()
	id, _ := cmd.Flags().GetString("id")

	card, err := instance.Client.Card(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	target, err := cli.ResolveColumn(card.Column, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	result, err := instance.Client.Move(ctx, models.MoveCommand{CardID: id, TargetColumn: target})
	if err != nil {
		return formatter.Fail(err)
	}
	if !result.OK() {
		msg := result.Message
		if msg == "" {
			msg = "server answered success=false"
		}
		if fmtErr := formatter.Error("MOVE_REJECTED", msg); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.ExitCodeError{Code: cli.ExitValidation, Err: errMoveRejected}
	}

	out := moveOutput{ID: id, From: card.Column, To: target}
	if formatter.JSON || formatter.Quiet {
		return formatter.Success(out)
	}
	return formatter.Message("✓ Moved %q from %s to %s", card.Title, card.Column.Title(), target.Title())
}
