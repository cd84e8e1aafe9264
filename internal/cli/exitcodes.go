package cli

import (
	"errors"
	"net/http"

	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, server failures, or any error that doesn't
	// fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: card not found on the server or board.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable server responses or data that cannot be processed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Unknown columns, unknown priorities, empty titles, or any
	// request the server rejected as invalid.
	ExitValidation = 5
)

// ExitCodeError pairs an error with the process exit code it should produce
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code carried by err, ExitSuccess for nil and
// ExitError for anything else.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

// Classify maps an error to a machine-readable code and an exit code
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrCardNotFound):
		return "CARD_NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrClientNotFound):
		return "CLIENT_NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrUnknownColumn),
		errors.Is(err, models.ErrUnknownPriority),
		errors.Is(err, models.ErrEmptyCardID),
		errors.Is(err, models.ErrInvalidClientID),
		errors.Is(err, ErrNoNextColumn),
		errors.Is(err, ErrNoPrevColumn):
		return "VALIDATION_ERROR", ExitValidation
	}

	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Code {
		case client.ErrTransport:
			return "CONNECTION_ERROR", ExitError
		case client.ErrDecode:
			return "MALFORMED_RESPONSE", ExitDataErr
		}
		switch reqErr.StatusCode {
		case http.StatusNotFound:
			if reqErr.ServerCode != "" {
				return reqErr.ServerCode, ExitNotFound
			}
			return "CARD_NOT_FOUND", ExitNotFound
		case http.StatusBadRequest:
			return "VALIDATION_ERROR", ExitValidation
		}
		return "SERVER_ERROR", ExitError
	}
	return "ERROR", ExitError
}
