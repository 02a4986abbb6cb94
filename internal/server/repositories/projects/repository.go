package projects

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/server/models"
)

// Filter narrows a project listing. Nil fields are not applied.
type Filter struct {
	Status   *int
	Category *int
	Hidden   *bool
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
}
