package card

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/user"
)

// CreateCmd returns the card new subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new card",
		Long: `Create a new card. It starts in the first column unless --column is given.

Examples:
  # Simple card (human-readable output)
  funil card new --title="Seguro Auto"

  # Quiet mode for bash capture
  CARD_ID=$(funil card new --title="Seguro Auto" --quiet)

  # Full example
  funil card new \
    --title="Plano de saúde empresarial" \
    --client-id=3 \
    --assignee="Ana" \
    --column=proposta_enviada \
    --priority=high \
    --value=12500 \
    --description=-
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Card title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Description in markdown (use - for stdin)")
	cmd.Flags().String("client", "", "Client name, for clients outside the registry")
	cmd.Flags().Int64("client-id", 0, "Registered client ID (see funil client list)")
	cmd.Flags().String("assignee", "", "Person responsible for the deal")
	cmd.Flags().Bool("mine", false, "Assign the card to yourself")
	cmd.Flags().String("column", "", "Column id or title (defaults to the first column)")
	cmd.Flags().String("priority", "medium", "Priority: low, medium, high")
	cmd.Flags().Float64("value", 0, "Deal value")

	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	clientName, _ := cmd.Flags().GetString("client")
	assignee, _ := cmd.Flags().GetString("assignee")
	if mine, _ := cmd.Flags().GetBool("mine"); mine && assignee == "" {
		assignee = user.Name()
	}
	var clientID *int64
	if cmd.Flags().Changed("client-id") {
		id, _ := cmd.Flags().GetInt64("client-id")
		if id <= 0 {
			return formatter.Fail(models.ErrInvalidClientID)
		}
		clientID = &id
	}
	columnName, _ := cmd.Flags().GetString("column")
	priority, _ := cmd.Flags().GetString("priority")
	value, _ := cmd.Flags().GetFloat64("value")

	if _, err := models.ParsePriority(priority); err != nil {
		return formatter.Fail(err)
	}

	var column models.Column
	if columnName != "" {
		column, err = cli.ParseColumnName(columnName)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	// Handle description from stdin
	if description == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			if fmtErr := formatter.Error("STDIN_READ_ERROR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return err
		}
		description = string(data)
	}

	card, err := instance.Client.CreateCard(cmd.Context(), client.NewCardRequest{
		Title:       title,
		Description: description,
		ClientID:    clientID,
		ClientName:  clientName,
		AssignedTo:  assignee,
		Column:      column,
		Priority:    priority,
		Value:       value,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(card)
	}
	if err := formatter.Message("✓ Created card %s in %s", card.ID, card.Column.Title()); err != nil {
		return err
	}
	return formatter.Success(card)
}
