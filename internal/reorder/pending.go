package reorder

import (
	"context"

	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
)

// Pending is a move request that has been accepted for sending but has
// not resolved. Its fields are fixed at drop time.
type Pending struct {
	Seq     uint64
	Command models.MoveCommand
	Drop    Drop

	gesture *Gesture
	ctx     context.Context
	mover   client.Mover
}

// Wait sends the move and blocks until the server answers or the
// synchronizer's context ends. There is no timeout: a hung request stays
// pending. Call it off the UI loop and hand the Outcome to Reconcile.
func (p *Pending) Wait() Outcome {
	res, err := p.mover.Move(p.ctx, p.Command)
	return Outcome{
		Seq:     p.Seq,
		Command: p.Command,
		Result:  res,
		Err:     err,
	}
}

// Outcome is a resolved move request
type Outcome struct {
	Seq     uint64
	Command models.MoveCommand
	Result  models.MoveResult
	Err     error
}

// Succeeded reports whether the server confirmed the move. Transport
// failures, malformed responses and explicit rejections all count as
// failure.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Result.OK()
}
