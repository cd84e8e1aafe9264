package card

import "errors"

// Card validation errors
var (
	ErrEmptyTitle    = errors.New("card title cannot be empty")
	ErrTitleTooLong  = errors.New("card title cannot exceed 255 characters")
	ErrNegativeValue = errors.New("card value cannot be negative")
)
