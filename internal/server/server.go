package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/thenoetrevino/funil/internal/daemon"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/services/card"
	"github.com/thenoetrevino/funil/internal/services/clients"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// MetricsSource reports push hub counters
type MetricsSource interface {
	Metrics() daemon.MetricsSnapshot
}

// Server exposes the board over JSON HTTP
type Server struct {
	cards   card.Service
	clients clients.Service
	metrics MetricsSource
	mux     *http.ServeMux
}

// Option configures a Server
type Option func(*Server)

// WithMetrics enables GET /api/metrics
func WithMetrics(src MetricsSource) Option {
	return func(s *Server) { s.metrics = src }
}

// WithClients enables the client registry routes under /clients
func WithClients(svc clients.Service) Option {
	return func(s *Server) { s.clients = svc }
}

// New builds the route table
func New(cards card.Service, opts ...Option) *Server {
	s := &Server{cards: cards, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /kanban/board", s.handleBoard)
	s.mux.HandleFunc("GET /kanban/card/{id}", s.handleGetCard)
	s.mux.HandleFunc("POST /kanban/card/new", s.handleCreateCard)
	s.mux.HandleFunc("POST /kanban/card/{id}/move", s.handleMoveCard)
	s.mux.HandleFunc("POST /kanban/card/{id}/delete", s.handleDeleteCard)
	s.mux.HandleFunc("GET /clients", s.withClients(s.handleListClients))
	s.mux.HandleFunc("GET /clients/{id}", s.withClients(s.handleGetClient))
	s.mux.HandleFunc("POST /clients/new", s.withClients(s.handleCreateClient))
	s.mux.HandleFunc("POST /clients/{id}/edit", s.withClients(s.handleUpdateClient))
	s.mux.HandleFunc("POST /clients/{id}/delete", s.withClients(s.handleDeleteClient))
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	return s
}

// Handler returns the routes wrapped in logging and panic recovery
func (s *Server) Handler() http.Handler {
	return logRequests(recoverPanics(s.mux))
}

// Serve runs an HTTP server on ln until ctx is done, then shuts it down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown failed: %w", err)
	}
	<-errCh
	return nil
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cards.GetBoard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	c, err := s.cards.GetCard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req card.CreateCardRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := s.cards.CreateCard(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleMoveCard answers {"success":true} or a 400 with {"success":false}.
// Every failure is a 400 so the board treats them alike.
func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Column string `json:"column"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMoveResult(false, err.Error()))
		return
	}

	cmd := models.MoveCommand{CardID: r.PathValue("id"), TargetColumn: models.Column(body.Column)}
	if _, err := s.cards.MoveCard(r.Context(), cmd); err != nil {
		slog.Info("move rejected", "card_id", cmd.CardID, "column", body.Column, "error", err)
		writeJSON(w, http.StatusBadRequest, models.NewMoveResult(false, err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewMoveResult(true, ""))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.cards.DeleteCard(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewMoveResult(true, ""))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.cards.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		writeJSON(w, http.StatusNotFound, errorBody("HUB_DISABLED", "push hub is not running"))
		return
	}
	writeJSON(w, http.StatusOK, s.metrics.Metrics())
}
