package card

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards by column",
		Long: `List every card on the board, grouped by column.

Examples:
  funil card list
  funil card list --column proposta_enviada
  funil card list --column "Pós-Venda" --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("column", "", "Only list cards of this column (id or title)")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	formatter, instance, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer instance.Close()

	snap, err := instance.Client.Board(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	columnName, _ := cmd.Flags().GetString("column")
	if columnName == "" {
		return formatter.Success(snap)
	}

	col, err := cli.ParseColumnName(columnName)
	if err != nil {
		return formatter.Fail(err)
	}
	return formatter.Success(snap.Cards(col))
}
