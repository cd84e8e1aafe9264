package events

import "time"

// ProtocolVersion is the wire protocol version sent with every message
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventCardMoved    EventType = "card_moved"
	EventCardCreated  EventType = "card_created"
	EventCardDeleted  EventType = "card_deleted"
	EventNotification EventType = "notification"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event is a board change or a message for the user.
// Column is kept as a raw string so an unknown stage from a newer server
// still decodes; receivers parse it before use.
type Event struct {
	Type       EventType `json:"type"`
	CardID     string    `json:"card_id,omitempty"`
	Column     string    `json:"column,omitempty"`
	Message    string    `json:"message,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id,omitempty"` // assigned by the daemon
}

// SubscribeMessage selects which event types a client receives.
// An empty list means all of them.
type SubscribeMessage struct {
	Types []EventType `json:"types,omitempty"`
}

// Wants reports whether a subscription includes t
func (s *SubscribeMessage) Wants(t EventType) bool {
	if s == nil || len(s.Types) == 0 {
		return true
	}
	for _, want := range s.Types {
		if want == t {
			return true
		}
	}
	return false
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"` // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}

// NotifyFunc receives connection status changes from the client.
// level is one of "info", "warning" or "error".
type NotifyFunc func(level, message string)
