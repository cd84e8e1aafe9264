package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/funil/internal/events"
)

const writeTimeout = 5 * time.Second

// Options tunes buffer sizes and health timings of the hub
type Options struct {
	BroadcastBuffer int
	ClientBuffer    int
	PingInterval    time.Duration
	HealthInterval  time.Duration
	StaleAfter      time.Duration
}

// DefaultOptions returns the production settings. Buffer sizes may be
// overridden with FUNIL_HUB_BROADCAST_BUFFER and FUNIL_HUB_CLIENT_BUFFER.
func DefaultOptions() Options {
	return Options{
		BroadcastBuffer: getEnvInt("FUNIL_HUB_BROADCAST_BUFFER", 100),
		ClientBuffer:    getEnvInt("FUNIL_HUB_CLIENT_BUFFER", 10),
		PingInterval:    30 * time.Second,
		HealthInterval:  30 * time.Second,
		StaleAfter:      90 * time.Second,
	}
}

// Option modifies Options before the server is built
type Option func(*Options)

// WithTimings overrides ping, health check and staleness durations
func WithTimings(ping, health, stale time.Duration) Option {
	return func(o *Options) {
		o.PingInterval = ping
		o.HealthInterval = health
		o.StaleAfter = stale
	}
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// DefaultSocketPath returns ~/.funil/funil.sock
func DefaultSocketPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".funil", "funil.sock"), nil
}

// client represents a connected board or CLI
type client struct {
	conn         net.Conn
	send         chan events.Message // closed by the server under s.mu
	subscription events.SubscribeMessage
	lastSeen     time.Time
	mu           sync.Mutex // Protects subscription and lastSeen
}

func (c *client) wants(t events.EventType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscription.Wants(t)
}

func (c *client) touch() {
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()
}

func (c *client) silentFor(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastSeen)
}

// Server is the push hub. It assigns sequence ids to incoming events and
// fans them out to every subscribed client.
type Server struct {
	socketPath      string
	listener        net.Listener
	clients         map[*client]struct{}
	closed          bool
	mu              sync.RWMutex
	ctx             context.Context
	cancel          context.CancelFunc
	broadcast       chan events.Event
	metrics         *Metrics
	sequenceCounter atomic.Int64
	opts            Options
	shutdownOnce    sync.Once
	wg              sync.WaitGroup
}

// NewServer creates the socket listener. Start must be called to serve.
func NewServer(socketPath string, opts ...Option) (*Server, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dir := filepath.Dir(socketPath)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		clients:    make(map[*client]struct{}),
		ctx:        ctx,
		cancel:     cancel,
		broadcast:  make(chan events.Event, o.BroadcastBuffer),
		metrics:    NewMetrics(),
		opts:       o,
	}, nil
}

// SocketPath returns the path the hub listens on
func (s *Server) SocketPath() string { return s.socketPath }

// Start runs the accept, broadcast and health loops until ctx is done or
// Shutdown is called. It returns after every goroutine has exited.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("push hub starting", "socket", s.socketPath)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	acceptErr := make(chan error, 1)
	s.wg.Go(func() { acceptErr <- s.acceptLoop(runCtx) })
	s.wg.Go(func() { s.broadcastLoop(runCtx) })
	s.wg.Go(func() { s.monitorHealth(runCtx) })

	var err error
	select {
	case <-runCtx.Done():
		slog.Info("push hub context cancelled, shutting down")
	case err = <-acceptErr:
		if err != nil {
			slog.Error("accept loop failed", "error", err)
		}
	}

	shutdownErr := s.Shutdown()
	cancel()
	s.wg.Wait()
	return errors.Join(err, shutdownErr)
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.opts.ClientBuffer),
			lastSeen: time.Now(),
		}
		if !s.addClient(c) {
			_ = conn.Close()
			return nil
		}

		slog.Debug("client connected", "clients", s.ClientCount())

		s.wg.Go(func() { s.handleClient(c) })
		s.wg.Go(func() { s.clientWriter(c) })
	}
}

func (s *Server) addClient(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	s.metrics.IncClientsTotal()
	s.metrics.SetConnectedClients(int32(len(s.clients)))
	return true
}

// broadcastLoop distributes events to subscribed clients
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			if event.Timestamp.IsZero() {
				event.Timestamp = time.Now()
			}
			s.metrics.IncBroadcasts()

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    "event",
				Event:   &event,
			}

			s.mu.RLock()
			for c := range s.clients {
				if !c.wants(event.Type) {
					continue
				}
				// slow clients lose events rather than stall the hub
				if !s.sendToClient(c, msg) {
					s.metrics.IncEventsDropped()
					slog.Warn("client send queue full, event dropped",
						"event_type", event.Type,
						"sequence_id", event.SequenceID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Debug("client disconnected", "clients", s.ClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}
		c.touch()

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch",
				"received", msg.Version,
				"expected", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				slog.Warn("failed to broadcast client event", "error", err)
			}

		case "subscribe":
			if msg.Subscribe != nil {
				c.mu.Lock()
				c.subscription = *msg.Subscribe
				c.mu.Unlock()
				slog.Debug("client subscribed", "types", msg.Subscribe.Types)
			}
		}
	}
}

// clientWriter sends queued messages to a client until its queue is closed
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := encoder.Encode(msg); err != nil {
			// handleClient notices the closed conn and unregisters
			_ = c.conn.Close()
			for range c.send {
			}
			return
		}
	}
}

// monitorHealth sends pings and removes clients that have gone silent
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.opts.PingInterval)
	defer pingTicker.Stop()

	healthTicker := time.NewTicker(s.opts.HealthInterval)
	defer healthTicker.Stop()

	pingMsg := events.Message{
		Version: events.ProtocolVersion,
		Type:    "ping",
		Event:   &events.Event{Type: events.EventPing},
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			s.mu.RLock()
			for c := range s.clients {
				if !s.sendToClient(c, pingMsg) {
					slog.Debug("failed to send ping, queue full")
				}
			}
			s.mu.RUnlock()

		case <-healthTicker.C:
			now := time.Now()
			s.mu.RLock()
			var stale []*client
			for c := range s.clients {
				if c.silentFor(now) > s.opts.StaleAfter {
					stale = append(stale, c)
				}
			}
			s.mu.RUnlock()

			for _, c := range stale {
				slog.Info("removing stale client", "silent_for", c.silentFor(now))
				s.metrics.IncStaleRemoved()
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues an event for every subscribed client (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	if s.ctx.Err() != nil {
		return ErrServerClosed
	}
	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped()
		return ErrBroadcastFull
	}
}

// Metrics returns a snapshot of the hub counters
func (s *Server) Metrics() MetricsSnapshot {
	return s.metrics.GetSnapshot()
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown closes the listener and every client connection.
// Safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down push hub")

		s.cancel()

		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = fmt.Errorf("failed to close listener: %w", closeErr)
		}

		s.mu.Lock()
		s.closed = true
		for c := range s.clients {
			_ = c.conn.Close()
			close(c.send)
		}
		s.clients = make(map[*client]struct{})
		s.metrics.SetConnectedClients(0)
		s.mu.Unlock()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			slog.Warn("failed to remove socket file", "error", removeErr)
		}
	})

	return err
}

// removeClient unregisters c and closes its connection
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.metrics.SetConnectedClients(int32(len(s.clients)))
	s.mu.Unlock()

	_ = c.conn.Close()
}

// sendToClient attempts a non-blocking send. Callers hold s.mu for reading.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		return false
	}
}
