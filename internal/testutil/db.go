package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/funil/internal/database"
)

// SetupTestDB creates a migrated SQLite database in a temp directory.
// The database is closed automatically via t.Cleanup().
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.InitDB(context.Background(), filepath.Join(t.TempDir(), "funil-test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// SetupTestRepo returns a card repository on a fresh test database
func SetupTestRepo(t *testing.T) *database.CardRepo {
	t.Helper()
	return database.NewCardRepo(SetupTestDB(t))
}

// SetupTestRepos returns card and client repositories sharing one fresh
// test database
func SetupTestRepos(t *testing.T) (*database.CardRepo, *database.ClientRepo) {
	t.Helper()
	db := SetupTestDB(t)
	return database.NewCardRepo(db), database.NewClientRepo(db)
}
