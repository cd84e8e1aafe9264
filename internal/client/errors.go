package client

import (
	"errors"
	"fmt"
)

// ErrorCode classifies why a request to the server failed
type ErrorCode int

const (
	// ErrTransport means the request never completed (network, context)
	ErrTransport ErrorCode = iota
	// ErrStatus means the server answered with a non-2xx status
	ErrStatus
	// ErrDecode means the body was not the expected JSON
	ErrDecode
)

func (c ErrorCode) String() string {
	switch c {
	case ErrTransport:
		return "transport"
	case ErrStatus:
		return "status"
	case ErrDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError describes a failed call to the pipeline server.
type RequestError struct {
	Code       ErrorCode
	Op         string
	StatusCode int
	ServerCode string // code of the server's error envelope, if any
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s: %s failure", e.Op, e.Code)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// CodeOf returns the classification of err if it is a *RequestError
func CodeOf(err error) (ErrorCode, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Code, true
	}
	return 0, false
}

// ErrMissingSuccess is wrapped when a move response lacks the success field
var ErrMissingSuccess = errors.New(`response has no "success" field`)
