package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

const (
	defaultQueueSize   = 100
	defaultMaxRetries  = 5
	defaultBaseDelay   = 1 * time.Second
	defaultReadTimeout = 60 * time.Second
	writeTimeout       = 5 * time.Second
)

// Client represents a connection to the funil push hub.
// It sends events in order, receives broadcasts, reconnects and
// remembers its subscription across reconnects.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue    chan Event
	closed        bool
	senderOnce    sync.Once
	senderStarted bool
	senderDone    chan struct{}

	// Reconnection configuration
	maxRetries  int
	baseDelay   time.Duration
	readTimeout time.Duration

	subscription SubscribeMessage
	lastSequence int64
	notify       NotifyFunc

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, ErrEmptySocketPath
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, defaultQueueSize),
		senderDone:  make(chan struct{}),
		maxRetries:  defaultMaxRetries,
		baseDelay:   defaultBaseDelay,
		readTimeout: defaultReadTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// SetNotifyFunc registers a callback for connection status changes
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

func (c *Client) emit(level, message string) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(level, message)
	}
}

// Connect establishes a connection to the daemon socket and sends the
// current subscription.
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if err := c.dialLocked(ctx); err != nil {
		return err
	}

	c.senderOnce.Do(func() {
		c.senderStarted = true
		go c.runSender()
	})
	return nil
}

// dialLocked opens the socket and sends the subscription. c.mu must be held.
func (c *Client) dialLocked(ctx context.Context) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	sub := SubscribeMessage{Types: append([]EventType(nil), c.subscription.Types...)}
	if err := c.writeLocked(Message{Type: "subscribe", Subscribe: &sub}); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Debug("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}
	return nil
}

// writeLocked encodes one message with a write deadline. c.mu must be held.
func (c *Client) writeLocked(msg Message) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	msg.Version = ProtocolVersion

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	err := c.encoder.Encode(msg)
	// a stale deadline would fail the next write on a healthy connection
	_ = c.conn.SetWriteDeadline(time.Time{})
	return err
}

func (c *Client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(msg)
}

// SendEvent queues an event to be sent to the daemon.
// Events are sent in order by a single sender goroutine.
// Returns ErrQueueFull instead of blocking.
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Client) runSender() {
	defer close(c.senderDone)

	for {
		select {
		case <-c.ctx.Done():
			c.flush()
			return
		case event := <-c.eventQueue:
			c.deliver(event)
		}
	}
}

// flush sends whatever is still queued at shutdown
func (c *Client) flush() {
	for {
		select {
		case event := <-c.eventQueue:
			c.deliver(event)
		default:
			return
		}
	}
}

func (c *Client) deliver(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := c.write(Message{Type: "event", Event: &event}); err != nil && !isConnectionError(err) {
		slog.Warn("failed to send event", "event_type", event.Type, "error", err)
	}
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// The channel is closed when ctx is done, the client is closed or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	if c == nil {
		close(eventChan)
		return eventChan, ErrNilClient
	}

	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(parent context.Context, eventChan chan Event) {
	defer close(eventChan)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	stopOnClose := context.AfterFunc(c.ctx, cancel)
	defer stopOnClose()

	// unblock a pending Decode as soon as ctx ends
	stopUnblock := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn != nil {
			_ = c.conn.SetReadDeadline(time.Now())
		}
	})
	defer stopUnblock()

	for {
		err := c.readEvents(ctx, eventChan)
		if ctx.Err() != nil {
			return
		}

		slog.Info("push connection lost, reconnecting", "error", err)
		c.emit("warning", "Live updates disconnected, reconnecting...")

		if !c.reconnect(ctx) {
			if ctx.Err() == nil {
				slog.Warn("giving up on push hub", "attempts", c.maxRetries)
				c.emit("error", "Live updates unavailable")
			}
			return
		}
		c.emit("info", "Live updates reconnected")
	}
}

// readEvents reads messages from the socket and forwards events in order.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			// duplicates and out-of-order events are dropped
			if msg.Event.SequenceID <= c.lastSequence {
				slog.Debug("dropping stale event",
					"sequence_id", msg.Event.SequenceID,
					"last_sequence", c.lastSequence)
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case "ping":
			if err := c.write(Message{Type: "pong"}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		}
	}
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return false
		}
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		err := c.dialLocked(ctx)
		if err == nil {
			// a restarted daemon numbers events from one again
			c.lastSequence = 0
		}
		c.mu.Unlock()

		if err == nil {
			slog.Info("reconnected to push hub", "attempt", i+1)
			return true
		}

		slog.Debug("reconnection attempt failed",
			"attempt", i+1,
			"max_retries", c.maxRetries,
			"retry_delay", delay,
			"error", err)
		delay *= 2
	}

	return false
}

// Subscribe restricts delivery to the given event types; no types means
// all of them. The subscription is kept and re-sent after a reconnect.
func (c *Client) Subscribe(types ...EventType) error {
	if c == nil {
		return ErrNilClient
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscription = SubscribeMessage{Types: append([]EventType(nil), types...)}
	sub := SubscribeMessage{Types: append([]EventType(nil), types...)}
	return c.writeLocked(Message{Type: "subscribe", Subscribe: &sub})
}

// Close closes the connection to the daemon and stops all goroutines.
// Queued events are flushed first. Safe to call more than once.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.senderStarted
	c.mu.Unlock()

	c.cancel()
	if started {
		<-c.senderDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
