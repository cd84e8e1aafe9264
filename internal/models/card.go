package models

import "time"

// Card is a single deal on the pipeline board.
// A card is owned by exactly one column at a time.
type Card struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ClientID    *int64     `json:"client_id,omitempty"`
	ClientName  string     `json:"client_name,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Column      Column     `json:"column"`
	Priority    Priority   `json:"priority"`
	Value       float64    `json:"value,omitempty"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GetID satisfies the quiet-mode output contract of the CLI formatter
func (c *Card) GetID() string {
	return c.ID
}

// ColumnCards is one column of a board snapshot
type ColumnCards struct {
	Column Column  `json:"column"`
	Cards  []*Card `json:"cards"`
}

// BoardSnapshot is the server-authoritative state of the whole board,
// with columns in board order and cards in position order.
type BoardSnapshot struct {
	Columns []ColumnCards `json:"columns"`
}

// Cards returns the cards of column c, or nil if the snapshot does not include it
func (s BoardSnapshot) Cards(c Column) []*Card {
	for _, cc := range s.Columns {
		if cc.Column == c {
			return cc.Cards
		}
	}
	return nil
}

// PipelineStats summarizes card counts per stage
type PipelineStats struct {
	Total    int            `json:"total"`
	ByColumn map[Column]int `json:"by_column"`
	Value    float64        `json:"value"`
}
