package board

import "errors"

var (
	// ErrUnregisteredColumn indicates a drop onto a container outside the drag group
	ErrUnregisteredColumn = errors.New("column is not registered on the board")

	// ErrCardNotOnBoard indicates that no column container owns the card
	ErrCardNotOnBoard = errors.New("card is not on the board")
)
