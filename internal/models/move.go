package models

// MoveCommand asks the server to place a card in a column.
// It lives only for the duration of one request.
type MoveCommand struct {
	CardID       string `json:"-"`
	TargetColumn Column `json:"column"`
}

// Validate checks the command before it is sent
func (m MoveCommand) Validate() error {
	if m.CardID == "" {
		return ErrEmptyCardID
	}
	if !m.TargetColumn.Valid() {
		return ErrUnknownColumn
	}
	return nil
}

// MoveResult is the server's answer to a MoveCommand.
// Success is a pointer so a response without the field can be told apart
// from an explicit rejection.
type MoveResult struct {
	Success *bool  `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the server accepted the move
func (r MoveResult) OK() bool {
	return r.Success != nil && *r.Success
}

// NewMoveResult builds a result with an explicit success flag
func NewMoveResult(ok bool, message string) MoveResult {
	return MoveResult{Success: &ok, Message: message}
}
