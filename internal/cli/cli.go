package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/daemon"
	"github.com/thenoetrevino/funil/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	Client *client.Client
	Events events.EventPublisher // nil when the push hub is not running
}

// NewCLI creates an HTTP client for the configured server and tries to
// reach the push hub.
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	c, err := client.New(cfg.Server.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create server client: %w", err)
	}

	socketPath := cfg.Server.Socket
	if socketPath == "" {
		socketPath, err = daemon.DefaultSocketPath()
		if err != nil {
			return &CLI{Client: c}, nil
		}
	}

	// Try to connect to the hub (optional - silent fallback)
	var eventClient events.EventPublisher
	ec, err := events.NewClient(socketPath)
	if err == nil {
		if err := ec.Connect(ctx); err == nil {
			eventClient = ec
		} else {
			slog.Debug("push hub not reachable", "error", events.ClassifyDaemonError(err).Message)
		}
	}

	return &CLI{Client: c, Events: eventClient}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.Events != nil {
		return c.Events.Close()
	}
	return nil
}
