package notifications

import (
	"context"

	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type Repository interface {
	ListActive(ctx context.Context, volunteerID int64) ([]*models.Notification, error)
	Dismiss(ctx context.Context, volunteerID, notificationID int64) error
}
