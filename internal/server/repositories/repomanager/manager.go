package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/codes"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/projects"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/storedemails"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/volunteers"
)

// CodeRepository is the storage of one code purpose.
type CodeRepository interface {
	Find(ctx context.Context, accountID int64) (*models.Code, error)
	Insert(ctx context.Context, code *models.Code) error
	Delete(ctx context.Context, accountID int64) (int64, error)
}

var _ CodeRepository = (*codes.PostgresRepository)(nil)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Volunteers(db dbx.DBTX) volunteers.Repository
	Codes(db dbx.DBTX, purpose models.CodePurpose) CodeRepository
	StoredEmails(db dbx.DBTX) storedemails.Repository
	Projects(db dbx.DBTX) projects.Repository
	Notifications(db dbx.DBTX) notifications.Repository
}
