package models

import "errors"

// Domain errors shared by the board, the service layer and the HTTP API
var (
	// ErrUnknownColumn indicates a column identifier outside the pipeline stages
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownPriority indicates a priority outside low/medium/high
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrEmptyCardID indicates a card without an identifier
	ErrEmptyCardID = errors.New("card id cannot be empty")

	// ErrCardNotFound indicates that no card has the given identifier
	ErrCardNotFound = errors.New("card not found")

	// ErrClientNotFound indicates that no client has the given identifier
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidClientID indicates a client identifier that is not a positive integer
	ErrInvalidClientID = errors.New("invalid client id")
)
