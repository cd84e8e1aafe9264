// Package tutorial prints the funil quickstart
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed tutorial.md
var tutorialContent string

const wrapWidth = 80

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show the funil quickstart",
		Long: `Show how to run the server, open the board and move cards.

Use --raw to print the markdown source, e.g. for pasting into notes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")
			return outputTutorial(cmd, raw)
		},
	}
	cmd.Flags().Bool("raw", false, "Print the markdown source")
	return cmd
}

func outputTutorial(cmd *cobra.Command, raw bool) error {
	if raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), tutorialContent)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(tutorialContent)
	if err != nil {
		return fmt.Errorf("failed to render tutorial: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
