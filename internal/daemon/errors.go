package daemon

import "errors"

var (
	ErrServerClosed  = errors.New("push hub is shut down")
	ErrBroadcastFull = errors.New("broadcast channel full")
)
