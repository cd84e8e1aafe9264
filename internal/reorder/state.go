package reorder

// GestureState is the lifecycle stage of one drag gesture
type GestureState int

const (
	// StateIdle is both the initial and the terminal state
	StateIdle GestureState = iota
	// StateDragging means a card has been picked up and may be carried
	StateDragging
	// StateDropped means the card was released over a column
	StateDropped
	// StatePending means the move request is in flight
	StatePending
	// StateReconciled means the server accepted the move
	StateReconciled
	// StateResynchronized means the move failed and the board was reloaded
	StateResynchronized
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDropped:
		return "dropped"
	case StatePending:
		return "pending"
	case StateReconciled:
		return "reconciled"
	case StateResynchronized:
		return "resynchronized"
	default:
		return "unknown"
	}
}
