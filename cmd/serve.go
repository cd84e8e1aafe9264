package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/daemon"
	"github.com/thenoetrevino/funil/internal/database"
	"github.com/thenoetrevino/funil/internal/server"
	cardsvc "github.com/thenoetrevino/funil/internal/services/card"
	"github.com/thenoetrevino/funil/internal/services/clients"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline server and its push hub",
		Long: `Run the pipeline HTTP server on the card database, together with the
push hub that tells open boards about changes.

Examples:
  # Serve on the configured address with sample data on a new database
  funil serve --seed

  # Serve a specific database without live updates
  funil serve --db ./vendas.db --listen :8080 --no-hub
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("listen", "", "Address to listen on (defaults to server.listen)")
	cmd.Flags().String("db", "", "Database file (defaults to server.database)")
	cmd.Flags().String("socket", "", "Push hub socket (defaults to server.socket)")
	cmd.Flags().Bool("seed", false, "Add sample cards when the board is empty")
	cmd.Flags().Bool("no-hub", false, "Do not start the push hub")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	listen := flagOr(cmd, "listen", cfg.Server.Listen)
	dbPath := flagOr(cmd, "db", cfg.Server.Database)
	socketPath := flagOr(cmd, "socket", cfg.Server.Socket)
	seed, _ := cmd.Flags().GetBool("seed")
	noHub, _ := cmd.Flags().GetBool("no-hub")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var (
		hub         *daemon.Server
		broadcaster cardsvc.Broadcaster
		opts        []server.Option
	)
	if !noHub {
		hub, err = startHub(socketPath)
		if err != nil {
			return err
		}
		broadcaster = hub
		opts = append(opts, server.WithMetrics(hub))
	}

	svc := cardsvc.NewService(database.NewCardRepo(db), broadcaster)
	registry := clients.NewService(database.NewClientRepo(db))
	opts = append(opts, server.WithClients(registry))
	if seed {
		if err := seedSamples(ctx, cmd, svc, registry); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		if hub != nil {
			_ = hub.Shutdown()
		}
		return fmt.Errorf("failed to listen on %s: %w", listen, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "funil server listening on http://%s\n", ln.Addr())
	if hub != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "push hub on %s\n", hub.SocketPath())
	}

	return serve(ctx, server.New(svc, opts...), ln, hub)
}

// seedSamples fills empty tables with sample clients and cards, linking the
// cards to the clients they name.
func seedSamples(ctx context.Context, cmd *cobra.Command, svc cardsvc.Service, registry clients.Service) error {
	n, err := registry.Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed clients: %w", err)
	}
	if n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample clients\n", n)
	}

	list, err := registry.ListClients(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	n, err = svc.Seed(ctx, list)
	if err != nil {
		return fmt.Errorf("failed to seed board: %w", err)
	}
	if n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample cards\n", n)
	}
	return nil
}

// serve runs the HTTP server and the hub until ctx is done or either fails
func serve(ctx context.Context, srv *server.Server, ln net.Listener, hub *daemon.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(gctx, ln) })
	if hub != nil {
		g.Go(func() error { return hub.Start(gctx) })
	}
	return g.Wait()
}

func startHub(socketPath string) (*daemon.Server, error) {
	if socketPath == "" {
		var err error
		if socketPath, err = daemon.DefaultSocketPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	hub, err := daemon.NewServer(socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to start push hub: %w", err)
	}
	return hub, nil
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}
