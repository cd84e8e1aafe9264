package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/config"
)

// ErrNoCLI is returned when a command runs without a CLI in its context
var ErrNoCLI = errors.New("CLI not initialized")

type cliKey struct{}

// WithCLI returns a context carrying c
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI stored by WithCLI
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(cliKey{}).(*CLI)
	if !ok || c == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}

// EnsureCLI stores a CLI in the command context unless one is already
// there. Command groups use it as their PersistentPreRunE.
func EnsureCLI(cmd *cobra.Command, _ []string) error {
	if _, err := GetCLIFromContext(cmd.Context()); err == nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instance, err := NewCLI(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	cmd.SetContext(WithCLI(cmd.Context(), instance))
	return nil
}

// Setup returns the formatter and CLI for a subcommand
func Setup(cmd *cobra.Command) (*OutputFormatter, *CLI, error) {
	formatter := NewFormatter(cmd)
	instance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			return nil, nil, fmtErr
		}
		return nil, nil, err
	}
	return formatter, instance, nil
}
