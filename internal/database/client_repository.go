package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/funil/internal/models"
)

// ClientRepository defines client registry persistence operations
type ClientRepository interface {
	ListClients(ctx context.Context, query string) ([]*models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

// ClientRepo implements ClientRepository on SQLite
type ClientRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Compile-time verification that *ClientRepo implements ClientRepository
var _ ClientRepository = (*ClientRepo)(nil)

// NewClientRepo creates a client repository on an open database
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const clientColumns = `id, name, email, phone, cpf_cnpj, address, insurance_type,
	notes, status, created_at, updated_at`

func scanClient(row rowScanner) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document, &c.Address, &c.InsuranceType,
		&c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns clients ordered by name. A non-empty query keeps
// only clients whose name, email, phone or document contains it.
func (r *ClientRepo) ListClients(ctx context.Context, query string) ([]*models.Client, error) {
	stmt := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		like := "%" + escapeLike(q) + "%"
		stmt += ` WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'
			OR phone LIKE ? ESCAPE '\' OR cpf_cnpj LIKE ? ESCAPE '\'`
		args = []any{like, like, like, like}
	}
	stmt += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	clients := []*models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetClient returns one client or models.ErrClientNotFound
func (r *ClientRepo) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", models.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return c, nil
}

// CreateClient inserts client. ID, status and timestamps are written back.
func (r *ClientRepo) CreateClient(ctx context.Context, client *models.Client) error {
	now := r.now()
	if client.Status == "" {
		client.Status = models.ClientActive
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (name, email, phone, cpf_cnpj, address, insurance_type,
			notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		client.Name, client.Email, client.Phone, client.Document, client.Address,
		client.InsuranceType, client.Notes, client.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read client id: %w", err)
	}

	client.ID = id
	client.CreatedAt = now
	client.UpdatedAt = now
	return nil
}

// UpdateClient rewrites every field of client. Cards that reference the
// client take its new name in the same transaction.
func (r *ClientRepo) UpdateClient(ctx context.Context, client *models.Client) error {
	now := r.now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE clients SET name = ?, email = ?, phone = ?, cpf_cnpj = ?, address = ?,
				insurance_type = ?, notes = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			client.Name, client.Email, client.Phone, client.Document, client.Address,
			client.InsuranceType, client.Notes, client.Status, now, client.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update client %d: %w", client.ID, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to update client %d: %w", client.ID, err)
		} else if n == 0 {
			return fmt.Errorf("%w: %d", models.ErrClientNotFound, client.ID)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE cards SET client_name = ? WHERE client_id = ?`, client.Name, client.ID)
		if err != nil {
			return fmt.Errorf("failed to rename client on cards: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	client.UpdatedAt = now
	return nil
}

// DeleteClient removes a client. Its cards stay on the board with the
// reference cleared and the last known name kept.
func (r *ClientRepo) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", models.ErrClientNotFound, id)
	}
	return nil
}

// clientName looks up the name of a client inside a card transaction
func clientName(ctx context.Context, tx *sql.Tx, id int64) (string, error) {
	var name string
	err := tx.QueryRowContext(ctx, `SELECT name FROM clients WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", models.ErrClientNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read client %d: %w", id, err)
	}
	return name, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
