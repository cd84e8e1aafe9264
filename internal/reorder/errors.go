package reorder

import "errors"

var (
	// ErrGestureActive indicates a drag was started while another is in progress
	ErrGestureActive = errors.New("a card is already being dragged")

	// ErrNoGesture indicates a drag operation without an active gesture
	ErrNoGesture = errors.New("no card is being dragged")

	// ErrCardNotInTarget indicates a drop whose card is not in the target column
	ErrCardNotInTarget = errors.New("dropped card is not in the target column")

	// ErrCardBeingDragged indicates a remote move for the card under the cursor
	ErrCardBeingDragged = errors.New("card is being dragged")
)
