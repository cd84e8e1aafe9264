package reorder

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often the board checks the server for changes
const DefaultPollInterval = 30 * time.Second

// Poller emits periodic refresh ticks while it is running.
// It replaces a free-floating interval handle: the owner starts it on
// activation and stops it on deactivation or teardown.
type Poller struct {
	interval time.Duration
	ticks    chan time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		ticks:    make(chan time.Time, 1),
	}
}

// Ticks delivers one value per elapsed interval. A tick that is not
// consumed before the next one is dropped. The channel survives Stop and
// Start and is never closed.
func (p *Poller) Ticks() <-chan time.Time {
	return p.ticks
}

// Interval returns the polling period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start begins polling. It returns false if the poller was already running.
func (p *Poller) Start(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.run(ctx, done)
	slog.Debug("poller started", "interval", p.interval)
	return true
}

// Stop halts polling and waits for the polling goroutine to exit.
// Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	slog.Debug("poller stopped")
}

// Running reports whether the poller is started
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			select {
			case p.ticks <- t:
			default:
			}
		}
	}
}
