// Command daemon runs the funil push hub on its own, for setups where the
// pipeline server is started with --no-hub or runs on another machine
// that forwards events.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/daemon"
	"github.com/thenoetrevino/funil/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if closeLog, err := logging.Init(cfg.Log.Level); err != nil {
		slog.Warn("file logging disabled", "error", err)
	} else {
		defer func() { _ = closeLog() }()
	}

	socketPath := cfg.Server.Socket
	if socketPath == "" {
		if socketPath, err = daemon.DefaultSocketPath(); err != nil {
			slog.Error("failed to resolve socket path", "error", err)
			os.Exit(1)
		}
	}

	// Ensure the socket directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		slog.Error("failed to create socket directory", "error", err)
		os.Exit(1)
	}

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		slog.Error("failed to create push hub", "error", err)
		os.Exit(1)
	}

	slog.Info("funil push hub starting", "socket_path", socketPath, "pid", os.Getpid())

	// Blocks until shutdown
	if err := server.Start(ctx); err != nil {
		slog.Error("push hub error", "error", err)
		os.Exit(1)
	}

	slog.Info("funil push hub stopped")
}
