package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/funil/internal/models"
)

var (
	ErrNoNextColumn = errors.New("card is already in the last column")
	ErrNoPrevColumn = errors.New("card is already in the first column")
)

// ResolveColumn turns a move target into a column. The target may be
// "next" or "prev" relative to current, a column id, or a column title
// (case-insensitive).
func ResolveColumn(current models.Column, target string) (models.Column, error) {
	cols := models.Columns()
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "next":
		i := current.Index()
		if i < 0 {
			return "", fmt.Errorf("%w: %s", models.ErrUnknownColumn, current)
		}
		if i == len(cols)-1 {
			return "", fmt.Errorf("%w (%s)", ErrNoNextColumn, current.Title())
		}
		return cols[i+1], nil
	case "prev":
		i := current.Index()
		if i < 0 {
			return "", fmt.Errorf("%w: %s", models.ErrUnknownColumn, current)
		}
		if i == 0 {
			return "", fmt.Errorf("%w (%s)", ErrNoPrevColumn, current.Title())
		}
		return cols[i-1], nil
	}

	return ParseColumnName(target)
}

// ParseColumnName accepts a column id or a column title (case-insensitive)
func ParseColumnName(name string) (models.Column, error) {
	name = strings.TrimSpace(name)
	if col, err := models.ParseColumn(name); err == nil {
		return col, nil
	}
	for _, col := range models.Columns() {
		if strings.EqualFold(col.Title(), name) {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: %s", models.ErrUnknownColumn, name)
}
