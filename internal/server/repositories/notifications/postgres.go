// Package notifications reads announcements addressed to a volunteer and
// marks them as read.
package notifications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListActive returns the unread announcements of a volunteer.
func (r *PostgresRepository) ListActive(ctx context.Context, volunteerID int64) ([]*models.Notification, error) {
	query :=
		`SELECT va.volunteer_announcement_id, a.announcement_id, a.title, a.body, a.created_datetime
		 FROM volunteer_announcement va
		 JOIN announcement a ON a.announcement_id = va.announcement
		 WHERE va.volunteer_id = $1 AND va.read = FALSE
		 ORDER BY a.created_datetime DESC`

	rows, err := r.db.QueryContext(ctx, query, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.AnnouncementID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Dismiss marks one of the volunteer's notifications as read. Notifications
// of other volunteers are reported as not found.
func (r *PostgresRepository) Dismiss(ctx context.Context, volunteerID, notificationID int64) error {
	query :=
		`UPDATE volunteer_announcement
		 SET read = TRUE, read_date = now()
		 WHERE volunteer_announcement_id = $1 AND volunteer_id = $2`

	res, err := r.db.ExecContext(ctx, query, notificationID, volunteerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
