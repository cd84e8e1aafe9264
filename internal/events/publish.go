package events

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy bounds how hard Publish tries before giving up
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration // doubled after every failed attempt
}

// DefaultRetry is used by one-shot commands such as notify
var DefaultRetry = RetryPolicy{Attempts: 3, BaseDelay: 50 * time.Millisecond}

// Publish sends event to the hub, retrying failed sends. It returns the
// last send error, or ctx's error if ctx ends while waiting to retry.
// A nil publisher means no hub is configured and is not an error.
func Publish(ctx context.Context, p EventPublisher, event Event, policy RetryPolicy) error {
	if p == nil {
		return nil
	}

	attrs := event.logAttrs()
	delay := policy.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if lastErr = p.SendEvent(event); lastErr == nil {
			if attempt > 1 {
				slog.Debug("event published after retry", append(attrs, "attempt", attempt)...)
			}
			return nil
		}
		if attempt == policy.Attempts {
			break
		}

		slog.Debug("event publish failed, retrying", append(attrs, "attempt", attempt, "retry_delay", delay, "error", lastErr)...)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	if lastErr != nil {
		slog.Warn("event publish failed", append(attrs, "attempts", policy.Attempts, "error", lastErr)...)
	}
	return lastErr
}

// logAttrs describes the event for the log. Notifications are logged by
// kind and size, never by text; board changes by card and column.
func (e Event) logAttrs() []any {
	if e.Type == EventNotification {
		return []any{"event_type", e.Type, "kind", e.Kind, "message_len", len(e.Message)}
	}
	return []any{"event_type", e.Type, "card_id", e.CardID, "column", e.Column}
}
