package volunteers

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.Volunteer) (*models.Volunteer, error)
	GetByUsername(ctx context.Context, username string) (*models.Volunteer, error)
	GetByID(ctx context.Context, id int64) (*models.Volunteer, error)
	MarkVerified(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, password, salt string) error
	CanAccessAdminPortal(ctx context.Context, id int64) (bool, error)
}
