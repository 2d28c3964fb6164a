// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"carematch/internal/database"
)

// New returns a migrated SQLite database in t's temp dir, closed on cleanup.
func New(t testing.TB) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "carematch_test.db")
	db, err := database.Open(database.NewSQLiteDialect(), path, database.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
