package cmd

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/daemon"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/tui"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the pipeline board",
		Long: `Open the interactive pipeline board.

The board talks to a running funil server (see "funil serve"). When the
server's push hub is reachable, moves made elsewhere show up live.`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}
	return cmd
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := client.New(cfg.Server.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create server client: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := tui.Options{Mover: c, Fetcher: c, Creator: c, Clients: c, Config: cfg}

	var hub *events.Client
	if cfg.Sync.LiveUpdatesEnabled() {
		hub, opts.Push = connectPush(ctx, cfg)
		if hub != nil {
			defer func() {
				if err := hub.Close(); err != nil {
					slog.Debug("error closing push client", "error", err)
				}
			}()
		}
	}

	model := tui.New(ctx, opts)
	defer model.Close()
	if hub != nil {
		hub.SetNotifyFunc(model.PushStatus)
	}

	slog.Info("board starting", "server", cfg.Server.URL, "live", hub != nil)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board failed: %w", err)
	}
	return nil
}

// connectPush subscribes to the push hub. A hub that is not running
// leaves the board without live updates.
func connectPush(ctx context.Context, cfg *config.Config) (*events.Client, <-chan events.Event) {
	socketPath := cfg.Server.Socket
	if socketPath == "" {
		var err error
		if socketPath, err = daemon.DefaultSocketPath(); err != nil {
			slog.Warn("no push socket path", "error", err)
			return nil, nil
		}
	}

	hub, err := events.NewClient(socketPath)
	if err != nil {
		slog.Warn("failed to create push client", "error", err)
		return nil, nil
	}
	if err := hub.Connect(ctx); err != nil {
		derr := events.ClassifyDaemonError(err)
		slog.Info("live updates off", "reason", derr.Message, "hint", derr.Hint)
		_ = hub.Close()
		return nil, nil
	}

	if err := hub.Subscribe(
		events.EventCardMoved,
		events.EventCardCreated,
		events.EventCardDeleted,
		events.EventNotification,
	); err != nil {
		slog.Warn("failed to subscribe to push hub", "error", err)
	}

	ch, err := hub.Listen(ctx)
	if err != nil {
		slog.Warn("failed to listen to push hub", "error", err)
		_ = hub.Close()
		return nil, nil
	}
	return hub, ch
}
