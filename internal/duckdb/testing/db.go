// Package duckdbtesting opens throwaway DuckDB databases for tests.
package duckdbtesting

import (
	"database/sql"
	"path/filepath"
	"testing"

	"vireon/internal/duckdb"
	"vireon/internal/testutil"
)

// OpenMemory returns an in-memory database with the vireon schema applied.
// It is closed when the test finishes.
func OpenMemory(t testing.TB) *sql.DB {
	t.Helper()
	return open(t, ":memory:")
}

// OpenFile creates a database file under t.TempDir and returns it with its path.
func OpenFile(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vireon.duckdb")
	return open(t, path), path
}

func open(t testing.TB, path string) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(testutil.Context(t), path)
	if err != nil {
		t.Fatalf("open duckdb %s: %v", path, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
