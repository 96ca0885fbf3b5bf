// Package repomanager vends SQL-backed repositories bound to either a
// connection pool or a transaction, and applies schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/server/migrations"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/histories"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/users"
)

// SQLRepositoryManager works for both supported dialects; only migrations
// differ between them.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Histories returns a histories.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Histories(db dbx.DBTX) histories.Repository {
	return histories.NewSQLRepository(db)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}
