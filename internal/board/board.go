// Package board holds the rendered kanban board: one container per
// registered pipeline column, each owning an ordered list of cards.
//
// A Board is not safe for concurrent use. It is owned by the UI loop and
// every mutation must happen there.
package board

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/thenoetrevino/funil/internal/models"
)

// counterPattern matches the "(N)" suffix of a column header
var counterPattern = regexp.MustCompile(`\(\d+\)`)

// Board is the local view of the pipeline.
type Board struct {
	// columns are the registered drop targets, in board order
	columns []models.Column

	// containers maps each registered column to the cards it owns
	containers map[models.Column][]*models.Card

	// owner maps card IDs to the column currently holding them
	owner map[string]models.Column

	// headers holds the rendered header text of each column.
	// Only RefreshCounters rewrites the count shown in it.
	headers map[models.Column]string
}

// New builds a board from a snapshot. Every pipeline column present in
// the snapshot is registered as a drop target in the shared drag group;
// columns the snapshot omits are not registered.
func New(snapshot models.BoardSnapshot) *Board {
	b := &Board{}
	b.Replace(snapshot)
	return b
}

// Replace discards all local state and rebuilds the board from snapshot.
// This is the full reload used to resynchronize with the server.
func (b *Board) Replace(snapshot models.BoardSnapshot) {
	present := make(map[models.Column][]*models.Card, len(snapshot.Columns))
	for _, cc := range snapshot.Columns {
		if !cc.Column.Valid() {
			slog.Warn("skipping unknown column in snapshot", "column", cc.Column)
			continue
		}
		present[cc.Column] = cc.Cards
	}

	b.columns = b.columns[:0]
	b.containers = make(map[models.Column][]*models.Card, len(present))
	b.owner = make(map[string]models.Column)
	b.headers = make(map[models.Column]string, len(present))

	// Registration follows the enumeration order, not the snapshot order
	for _, col := range models.Columns() {
		cards, ok := present[col]
		if !ok {
			continue
		}
		b.columns = append(b.columns, col)

		container := make([]*models.Card, 0, len(cards))
		for _, card := range cards {
			if card == nil || card.ID == "" {
				continue
			}
			if prev, dup := b.owner[card.ID]; dup {
				slog.Warn("card listed twice in snapshot, keeping first",
					"card_id", card.ID, "kept", prev, "dropped", col)
				continue
			}
			c := *card
			c.Column = col
			container = append(container, &c)
			b.owner[c.ID] = col
		}
		b.containers[col] = container
		b.headers[col] = fmt.Sprintf("%s (%d)", col.Title(), len(container))
	}
}

// Columns returns the registered columns in board order
func (b *Board) Columns() []models.Column {
	out := make([]models.Column, len(b.columns))
	copy(out, b.columns)
	return out
}

// Registered reports whether c is a drop target of this board
func (b *Board) Registered(c models.Column) bool {
	_, ok := b.containers[c]
	return ok
}

// Cards returns the cards owned by c in display order
func (b *Board) Cards(c models.Column) []*models.Card {
	container := b.containers[c]
	out := make([]*models.Card, len(container))
	copy(out, container)
	return out
}

// Card returns the card with the given ID, or nil
func (b *Board) Card(id string) *models.Card {
	col, idx, ok := b.Locate(id)
	if !ok {
		return nil
	}
	return b.containers[col][idx]
}

// Locate returns the owning column and index of a card
func (b *Board) Locate(id string) (models.Column, int, bool) {
	col, ok := b.owner[id]
	if !ok {
		return "", 0, false
	}
	for i, card := range b.containers[col] {
		if card.ID == id {
			return col, i, true
		}
	}
	return "", 0, false
}

// Move relocates a card into target at index, removing it from its
// current container first. Index is clamped to the target's bounds.
// It returns the column the card was taken from.
func (b *Board) Move(id string, target models.Column, index int) (models.Column, error) {
	if !b.Registered(target) {
		return "", fmt.Errorf("%w: %s", ErrUnregisteredColumn, target)
	}
	from, idx, ok := b.Locate(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCardNotOnBoard, id)
	}

	card := b.containers[from][idx]
	b.containers[from] = append(b.containers[from][:idx], b.containers[from][idx+1:]...)

	dst := b.containers[target]
	index = max(0, min(index, len(dst)))
	dst = append(dst, nil)
	copy(dst[index+1:], dst[index:])
	dst[index] = card
	b.containers[target] = dst

	card.Column = target
	b.owner[id] = target
	return from, nil
}

// Append moves a card to the end of target
func (b *Board) Append(id string, target models.Column) (models.Column, error) {
	return b.Move(id, target, len(b.containers[target]))
}

// Count returns the number of cards currently owned by c
func (b *Board) Count(c models.Column) int {
	return len(b.containers[c])
}

// Counters counts the children of every registered column
func (b *Board) Counters() map[models.Column]int {
	out := make(map[models.Column]int, len(b.columns))
	for _, col := range b.columns {
		out[col] = len(b.containers[col])
	}
	return out
}

// RefreshCounters recomputes the child count of every column and
// rewrites the "(N)" suffix of its header.
func (b *Board) RefreshCounters() {
	for col, n := range b.Counters() {
		count := "(" + strconv.Itoa(n) + ")"
		header := b.headers[col]
		if counterPattern.MatchString(header) {
			b.headers[col] = counterPattern.ReplaceAllLiteralString(header, count)
		} else {
			b.headers[col] = header + " " + count
		}
	}
}

// Header returns the header text as last rendered
func (b *Board) Header(c models.Column) string {
	return b.headers[c]
}

// Snapshot exports the current local state
func (b *Board) Snapshot() models.BoardSnapshot {
	snap := models.BoardSnapshot{Columns: make([]models.ColumnCards, 0, len(b.columns))}
	for _, col := range b.columns {
		cards := make([]*models.Card, 0, len(b.containers[col]))
		for i, card := range b.containers[col] {
			c := *card
			c.Position = i
			cards = append(cards, &c)
		}
		snap.Columns = append(snap.Columns, models.ColumnCards{Column: col, Cards: cards})
	}
	return snap
}
