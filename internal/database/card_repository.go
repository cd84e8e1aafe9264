package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/funil/internal/models"
)

// CardRepository defines card persistence operations
type CardRepository interface {
	ListCards(ctx context.Context) ([]*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	CreateCard(ctx context.Context, card *models.Card) error
	MoveCard(ctx context.Context, id string, column models.Column) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	CountByColumn(ctx context.Context) (map[models.Column]int, error)
	SumValue(ctx context.Context) (float64, error)
}

// CardRepo implements CardRepository on SQLite
type CardRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Compile-time verification that *CardRepo implements CardRepository
var _ CardRepository = (*CardRepo)(nil)

// NewCardRepo creates a repository on an open database
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const cardColumns = `id, title, description, client_id, client_name, assigned_to, column_name,
	priority, value, position, due_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		c        models.Card
		column   string
		priority string
		due      sql.NullTime
		clientID sql.NullInt64
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &clientID, &c.ClientName, &c.AssignedTo, &column,
		&priority, &c.Value, &c.Position, &due, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Column = models.Column(column)
	c.Priority = models.Priority(priority)
	if due.Valid {
		t := due.Time
		c.DueDate = &t
	}
	if clientID.Valid {
		id := clientID.Int64
		c.ClientID = &id
	}
	return &c, nil
}

// ListCards returns every card ordered by column and position
func (r *CardRepo) ListCards(ctx context.Context) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards ORDER BY column_name, position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCard returns one card or models.ErrCardNotFound
func (r *CardRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	c, err := scanCard(r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrCardNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return c, nil
}

// CreateCard inserts card at the end of its column. Position and
// timestamps are assigned here and written back into card. A card that
// references a client takes the client's current name.
func (r *CardRepo) CreateCard(ctx context.Context, card *models.Card) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var clientID sql.NullInt64
		if card.ClientID != nil {
			name, err := clientName(ctx, tx, *card.ClientID)
			if err != nil {
				return err
			}
			card.ClientName = name
			clientID = sql.NullInt64{Int64: *card.ClientID, Valid: true}
		}

		pos, err := nextPosition(ctx, tx, string(card.Column))
		if err != nil {
			return err
		}
		now := r.now()
		var due sql.NullTime
		if card.DueDate != nil {
			due = sql.NullTime{Time: *card.DueDate, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO cards (`+cardColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			card.ID, card.Title, card.Description, clientID, card.ClientName, card.AssignedTo,
			string(card.Column), string(card.Priority), card.Value, pos, due, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}

		card.Position = pos
		card.CreatedAt = now
		card.UpdatedAt = now
		return nil
	})
}

// MoveCard places a card at the end of column and returns it updated.
// A card already in column keeps its position.
func (r *CardRepo) MoveCard(ctx context.Context, id string, column models.Column) (*models.Card, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT column_name FROM cards WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", models.ErrCardNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to read card %s: %w", id, err)
		}

		if current == string(column) {
			_, err = tx.ExecContext(ctx, `UPDATE cards SET updated_at = ? WHERE id = ?`, r.now(), id)
			if err != nil {
				return fmt.Errorf("failed to move card %s: %w", id, err)
			}
			return nil
		}

		pos, err := nextPosition(ctx, tx, string(column))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE cards SET column_name = ?, position = ?, updated_at = ? WHERE id = ?`,
			string(column), pos, r.now(), id,
		)
		if err != nil {
			return fmt.Errorf("failed to move card %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetCard(ctx, id)
}

// DeleteCard removes a card or returns models.ErrCardNotFound
func (r *CardRepo) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrCardNotFound, id)
	}
	return nil
}

// CountByColumn returns the number of cards in each column that has any
func (r *CardRepo) CountByColumn(ctx context.Context) (map[models.Column]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT column_name, COUNT(*) FROM cards GROUP BY column_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[models.Column]int)
	for rows.Next() {
		var (
			col string
			n   int
		)
		if err := rows.Scan(&col, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		out[models.Column(col)] = n
	}
	return out, rows.Err()
}

// SumValue returns the total deal value across all cards
func (r *CardRepo) SumValue(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(value) FROM cards`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum card values: %w", err)
	}
	return total.Float64, nil
}
