package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/notify"
)

// errHubUnavailable is returned when no push hub accepted the connection
var errHubUnavailable = errors.New("push hub is not running")

// NotifyCmd returns the notify command
func NotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Show a banner on every open board",
		Long: `Send a notification through the push hub. Every open board shows it
as a banner.

Examples:
  funil notify "Reunião de vendas às 15h"
  funil notify --kind success "Meta do mês batida!"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNotify,
	}

	cmd.Flags().String("kind", "info", "Banner kind: info, success, error")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "No output on success")

	return cmd
}

func runNotify(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	kindName, _ := cmd.Flags().GetString("kind")
	kind, err := notify.ParseKind(kindName)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("VALIDATION_ERROR", err.Error(), "Use one of: info, success, error"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.ExitCodeError{Code: cli.ExitUsage, Err: err}
	}

	instance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if instance, err = cli.NewCLI(cmd.Context(), cfg); err != nil {
			return err
		}
	}
	defer func() {
		if err := instance.Close(); err != nil {
			slog.Debug("error closing cli", "error", err)
		}
	}()

	if instance.Events == nil {
		if fmtErr := formatter.ErrorWithSuggestion("HUB_UNAVAILABLE", errHubUnavailable.Error(), "Start it with: funil serve"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.ExitCodeError{Code: cli.ExitError, Err: errHubUnavailable}
	}

	message := strings.Join(args, " ")
	event := events.Event{Type: events.EventNotification, Message: message, Kind: kind.String()}
	if err := events.Publish(cmd.Context(), instance.Events, event, events.DefaultRetry); err != nil {
		if fmtErr := formatter.Error("PUBLISH_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.ExitCodeError{Code: cli.ExitError, Err: err}
	}

	if formatter.JSON {
		return formatter.Success(map[string]string{"message": message, "kind": kind.String()})
	}
	return formatter.Message("✓ Sent %s notification", kind)
}
