package storedemails

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.StoredEmail) (int64, error)
	List(ctx context.Context) ([]*models.StoredEmail, error)
	Get(ctx context.Context, id int64) (*models.StoredEmail, error)
	Update(ctx context.Context, e *models.StoredEmail) error
	IncrementRetry(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
