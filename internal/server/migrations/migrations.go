// Package migrations embeds the goose SQL migrations, one directory per
// dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var Migrations embed.FS

// Up applies all pending migrations for dialect. The directory name of each
// dialect matches its goose dialect name.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, string(dialect))
}
