// Package storedemails keeps outbound emails that could not be delivered
// while the mail service was offline.
package storedemails

import (
	"context"
	"database/sql"
	"errors"
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

const selectColumns = `stored_id, "to", "from", subject, text, html, retry_count, created_datetime, modified_datetime`

type scanner interface {
	Scan(dest ...any) error
}

func scanEmail(s scanner) (*models.StoredEmail, error) {
	e := &models.StoredEmail{}
	var html sql.NullString
	if err := s.Scan(&e.ID, &e.To, &e.From, &e.Subject, &e.Text, &html, &e.RetryCount, &e.CreatedAt, &e.ModifiedAt); err != nil {
		return nil, err
	}
	e.HTML = html.String
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.StoredEmail) (int64, error) {
	query :=
		`INSERT INTO stored_emails ("to", "from", subject, text, html)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING stored_id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, e.To, e.From, e.Subject, e.Text, nullIfEmpty(e.HTML)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	e.ID = id
	return id, nil
}

// List returns every stored email, oldest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.StoredEmail, error) {
	query := `SELECT ` + selectColumns + ` FROM stored_emails ORDER BY created_datetime, stored_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.StoredEmail
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.StoredEmail, error) {
	query := `SELECT ` + selectColumns + ` FROM stored_emails WHERE stored_id = $1`

	e, err := scanEmail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Update rewrites the addressable fields of a stored email.
func (r *PostgresRepository) Update(ctx context.Context, e *models.StoredEmail) error {
	query :=
		`UPDATE stored_emails
		 SET "to" = $2, "from" = $3, subject = $4, text = $5, html = $6, modified_datetime = now()
		 WHERE stored_id = $1`

	return r.execOne(ctx, query, e.ID, e.To, e.From, e.Subject, e.Text, nullIfEmpty(e.HTML))
}

func (r *PostgresRepository) IncrementRetry(ctx context.Context, id int64) error {
	query :=
		`UPDATE stored_emails
		 SET retry_count = retry_count + 1, modified_datetime = now()
		 WHERE stored_id = $1`

	return r.execOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM stored_emails WHERE stored_id = $1`
	return r.execOne(ctx, query, id)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
