// AngelaMos | 2026
// testutil.go

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

// NewDB returns an in-memory SQLite database with every migration applied.
// The pool is pinned to one connection because each SQLite memory
// connection is its own database.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close() //nolint:errcheck // test cleanup
	})

	if _, err := core.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}
