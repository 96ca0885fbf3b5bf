package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/histories"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Histories(db dbx.DBTX) histories.Repository
}
