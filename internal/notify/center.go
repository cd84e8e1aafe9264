// Package notify provides the notification sink: transient banners that
// remove themselves after a per-kind duration and can be dismissed by the
// user at any time.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Sink accepts user-facing notifications. Any collaborator, including the
// push-update channel, may call it.
type Sink interface {
	Notify(message string, kind Kind)
}

// Notification is one banner currently on screen
type Notification struct {
	ID        int64
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Durations configures how long each kind of banner stays visible
type Durations struct {
	Success time.Duration
	Error   time.Duration
	Info    time.Duration
}

// DefaultDurations returns the board defaults: success banners are short,
// errors and server messages linger.
func DefaultDurations() Durations {
	return Durations{
		Success: 3 * time.Second,
		Error:   5 * time.Second,
		Info:    5 * time.Second,
	}
}

func (d Durations) forKind(k Kind) time.Duration {
	switch k {
	case KindSuccess:
		return d.Success
	case KindError:
		return d.Error
	default:
		return d.Info
	}
}

// stopper is the part of *time.Timer the center needs
type stopper interface {
	Stop() bool
}

// scheduleFunc runs f once after d
type scheduleFunc func(d time.Duration, f func()) stopper

func realSchedule(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Option configures a Center
type Option func(*Center)

// WithOnChange registers a callback invoked after banners are added or
// removed. It runs without the center's lock held and may be called from a
// timer goroutine.
func WithOnChange(fn func()) Option {
	return func(c *Center) {
		c.onChange = fn
	}
}

// Center owns the set of visible banners and their expiry timers.
// It is safe for concurrent use.
type Center struct {
	mu        sync.Mutex
	items     []Notification
	timers    map[int64]stopper
	nextID    int64
	durations Durations
	schedule  scheduleFunc
	now       func() time.Time
	onChange  func()
	closed    bool
}

// Compile-time verification that *Center implements Sink
var _ Sink = (*Center)(nil)

// NewCenter creates a Center. Zero durations fall back to the defaults.
func NewCenter(d Durations, opts ...Option) *Center {
	def := DefaultDurations()
	if d.Success <= 0 {
		d.Success = def.Success
	}
	if d.Error <= 0 {
		d.Error = def.Error
	}
	if d.Info <= 0 {
		d.Info = def.Info
	}

	c := &Center{
		timers:    make(map[int64]stopper),
		durations: d,
		schedule:  realSchedule,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify shows a banner and discards its ID
func (c *Center) Notify(message string, kind Kind) {
	c.Show(message, kind)
}

// Show displays a banner and schedules its automatic removal.
// It returns the banner ID, or 0 once the center is closed.
func (c *Center) Show(message string, kind Kind) int64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.nextID++
	id := c.nextID
	d := c.durations.forKind(kind)
	now := c.now()
	c.items = append(c.items, Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(d),
	})
	c.timers[id] = c.schedule(d, func() { c.expire(id) })
	c.mu.Unlock()

	slog.Debug("notification shown", "id", id, "kind", kind, "message", message)
	c.changed()
	return id
}

// Dismiss removes a banner. Removing a banner that is already gone is a
// no-op; the return value reports whether anything was removed.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	removed := c.removeLocked(id)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	if removed {
		c.changed()
	}
	return removed
}

// DismissLatest removes the most recent banner, if any
func (c *Center) DismissLatest() bool {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return false
	}
	id := c.items[len(c.items)-1].ID
	c.mu.Unlock()
	return c.Dismiss(id)
}

// expire is the timer callback. The banner may already be gone.
func (c *Center) expire(id int64) {
	c.mu.Lock()
	removed := c.removeLocked(id)
	delete(c.timers, id)
	c.mu.Unlock()

	if removed {
		slog.Debug("notification expired", "id", id)
		c.changed()
	}
}

func (c *Center) removeLocked(id int64) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the visible banners, oldest first
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// HasAny reports whether any banner is visible
func (c *Center) HasAny() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) > 0
}

// Close stops every pending timer and clears the banners.
// Later calls to Show are ignored. Close is idempotent.
func (c *Center) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.mu.Unlock()
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
