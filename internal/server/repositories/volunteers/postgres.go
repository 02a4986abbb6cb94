// Package volunteers provides a PostgreSQL-backed repository for volunteer
// accounts and their login credentials.
package volunteers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `volunteer_id, username, email, name, password, salt, verified, admin_portal_access, created_datetime`

func scanVolunteer(row *sql.Row) (*models.Volunteer, error) {
	v := &models.Volunteer{}
	err := row.Scan(&v.ID, &v.Username, &v.Email, &v.Name, &v.Password, &v.Salt,
		&v.Verified, &v.AdminPortalAccess, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

// Create inserts v and fills in its id and creation time. A duplicate
// username or email yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, v *models.Volunteer) (*models.Volunteer, error) {
	query :=
		`INSERT INTO volunteer (username, email, name, password, salt)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING volunteer_id, verified, created_datetime`

	err := r.db.QueryRowContext(ctx, query, v.Username, v.Email, v.Name, v.Password, v.Salt).
		Scan(&v.ID, &v.Verified, &v.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return v, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Volunteer, error) {
	query := `SELECT ` + selectColumns + ` FROM volunteer WHERE username = $1`
	return scanVolunteer(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Volunteer, error) {
	query := `SELECT ` + selectColumns + ` FROM volunteer WHERE volunteer_id = $1`
	return scanVolunteer(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, id int64) error {
	query := `UPDATE volunteer SET verified = TRUE WHERE volunteer_id = $1`
	return r.execOne(ctx, query, id)
}

// UpdatePassword replaces the stored digest and salt together.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, password, salt string) error {
	query := `UPDATE volunteer SET password = $2, salt = $3 WHERE volunteer_id = $1`
	return r.execOne(ctx, query, id, password, salt)
}

func (r *PostgresRepository) CanAccessAdminPortal(ctx context.Context, id int64) (bool, error) {
	query := `SELECT admin_portal_access FROM volunteer WHERE volunteer_id = $1`

	var access bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&access); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return access, nil
}

// execOne runs an update that must hit exactly one volunteer row.
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
