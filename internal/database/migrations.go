package database

import (
	"context"
	"database/sql"
	"fmt"
)

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			cpf_cnpj TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			insurance_type TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ativo',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			client_id INTEGER REFERENCES clients(id) ON DELETE SET NULL,
			client_name TEXT NOT NULL DEFAULT '',
			assigned_to TEXT NOT NULL DEFAULT '',
			column_name TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'medium',
			value REAL NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			due_date DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// databases created before the client registry lack the reference
	if err := addColumnIfMissing(ctx, db, "cards", "client_id",
		`INTEGER REFERENCES clients(id) ON DELETE SET NULL`); err != nil {
		return err
	}

	// Board loads read cards column by column in position order
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_cards_column
		ON cards(column_name, position)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_cards_client
		ON cards(client_id)
	`)
	return err
}

// addColumnIfMissing adds column to table unless it already exists
func addColumnIfMissing(ctx context.Context, db *sql.DB, table, column, definition string) error {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to inspect %s: %w", table, err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `ALTER TABLE `+table+` ADD COLUMN `+column+` `+definition)
	if err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	return nil
}
