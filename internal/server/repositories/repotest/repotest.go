// Package repotest opens migrated throwaway databases for repository and
// service tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/server/migrations"
)

// OpenSQLite returns a migrated SQLite database in t's temp dir. It is
// closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, dialect, err := dbx.Open(filepath.Join(t.TempDir(), "studynotes.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(context.Background(), db, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
