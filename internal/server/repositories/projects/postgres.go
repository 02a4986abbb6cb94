// Package projects provides read and update access to volunteer projects.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const selectColumns = `project_id, title, status, project_category, hidden, image_directory, summary, description, data_entry_user_id, created_datetime`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	var dataEntry sql.NullInt64
	err := s.Scan(&p.ID, &p.Title, &p.Status, &p.ProjectCategory, &p.Hidden,
		&p.ImageDirectory, &p.Summary, &p.Description, &dataEntry, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if dataEntry.Valid {
		id := dataEntry.Int64
		p.DataEntryUserID = &id
	}
	return p, nil
}

// List returns projects matching f ordered by id.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Project, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, *f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		where = append(where, fmt.Sprintf("project_category = $%d", len(args)))
	}
	if f.Hidden != nil {
		args = append(args, *f.Hidden)
		where = append(where, fmt.Sprintf("hidden = $%d", len(args)))
	}

	query := `SELECT ` + selectColumns + ` FROM project`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY project_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT ` + selectColumns + ` FROM project WHERE project_id = $1`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) error {
	query :=
		`UPDATE project
		 SET title = $2, status = $3, project_category = $4, hidden = $5,
		     image_directory = $6, summary = $7, description = $8, data_entry_user_id = $9
		 WHERE project_id = $1`

	var dataEntry sql.NullInt64
	if p.DataEntryUserID != nil {
		dataEntry = sql.NullInt64{Int64: *p.DataEntryUserID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Status, p.ProjectCategory, p.Hidden,
		p.ImageDirectory, p.Summary, p.Description, dataEntry)
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
