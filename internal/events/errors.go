package events

import (
	"errors"
	"net"
	"os"
	"syscall"
)

var (
	ErrNilClient       = errors.New("event client is nil")
	ErrEmptySocketPath = errors.New("socket path cannot be empty")
	ErrNotConnected    = errors.New("not connected to daemon")
	ErrClientClosed    = errors.New("event client is closed")
	ErrQueueFull       = errors.New("event queue full: daemon is not draining events")
)

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError represents a structured daemon error with context.
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *DaemonError) Unwrap() error { return e.Err }

// ClassifyDaemonError maps common errors to structured DaemonError types.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "Socket file not found",
			Hint:    "Start the push hub: funil serve",
			Err:     err,
		}
	}

	if errors.Is(err, os.ErrPermission) {
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "Permission denied",
			Hint:    "Check ~/.funil/ permissions: chmod 700 ~/.funil/",
			Err:     err,
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "The push hub may have crashed. Restart it: funil serve",
			Err:     err,
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "Push hub not running",
		Hint:    "Start the push hub: funil serve",
		Err:     err,
	}
}

// isConnectionError reports errors expected while a connection is going away
func isConnectionError(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, ErrNotConnected)
}
