// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/server/migrations"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/codes"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/projects"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/storedemails"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/volunteers"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to
// whatever DBTX the caller holds (a pool or a transaction).
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Volunteers(db dbx.DBTX) volunteers.Repository {
	return volunteers.NewPostgresRepository(db)
}

// Codes returns the code table of the given purpose.
func (m *PostgresRepositoryManager) Codes(db dbx.DBTX, purpose models.CodePurpose) CodeRepository {
	return codes.NewPostgresRepository(db, purpose)
}

func (m *PostgresRepositoryManager) StoredEmails(db dbx.DBTX) storedemails.Repository {
	return storedemails.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Notifications(db dbx.DBTX) notifications.Repository {
	return notifications.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
