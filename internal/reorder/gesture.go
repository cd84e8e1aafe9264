package reorder

import "github.com/thenoetrevino/funil/internal/models"

// Gesture tracks one drag from pick-up to reconciliation.
// Gestures share nothing: once resolved, a gesture is discarded.
type Gesture struct {
	state       GestureState
	cardID      string
	origin      models.Column
	originIndex int
}

// State returns the gesture's lifecycle stage
func (g *Gesture) State() GestureState {
	return g.state
}

// CardID returns the card being dragged
func (g *Gesture) CardID() string {
	return g.cardID
}

// Origin returns the column the card was picked up from
func (g *Gesture) Origin() models.Column {
	return g.origin
}

// Drop describes a released card: where it came from and where it landed.
// By the time a Drop exists the board already shows the card at Target/Index.
type Drop struct {
	CardID string
	Source models.Column
	Target models.Column
	Index  int
}
