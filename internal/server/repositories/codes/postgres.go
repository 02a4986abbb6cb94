// Package codes provides the PostgreSQL storage for one-time codes. Each
// purpose lives in its own table, keyed by the owning volunteer id.
package codes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type table struct {
	name     string
	idColumn string
}

var tables = map[models.CodePurpose]table{
	models.PurposeVerification:  {name: "verification_code", idColumn: "verification_code_id"},
	models.PurposePasswordReset: {name: "password_reset_code", idColumn: "password_reset_code_id"},
}

// PostgresRepository stores codes of a single purpose.
type PostgresRepository struct {
	db      dbx.DBTX
	purpose models.CodePurpose
	table   table
}

// NewPostgresRepository binds a repository for purpose to db. It panics on an
// unknown purpose, which is a programming error.
func NewPostgresRepository(db dbx.DBTX, purpose models.CodePurpose) *PostgresRepository {
	t, ok := tables[purpose]
	if !ok {
		panic(fmt.Sprintf("codes: unknown purpose %q", purpose))
	}
	return &PostgresRepository{db: db, purpose: purpose, table: t}
}

// Find returns the record stamped with the repository purpose. A null foreign
// key is returned as AccountID 0.
func (r *PostgresRepository) Find(ctx context.Context, accountID int64) (*models.Code, error) {
	query := fmt.Sprintf(
		`SELECT %[2]s, code, salt, created_datetime FROM %[1]s WHERE %[2]s = $1`,
		r.table.name, r.table.idColumn)

	var owner sql.NullInt64
	c := &models.Code{Purpose: r.purpose}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&owner, &c.Digest, &c.Salt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if owner.Valid {
		c.AccountID = owner.Int64
	}

	return c, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, c *models.Code) error {
	if c.Purpose != r.purpose {
		return fmt.Errorf("%w: %s code stored as %s", common.ErrInvalidArgument, c.Purpose, r.purpose)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, code, salt, created_datetime) VALUES ($1, $2, $3, $4)`,
		r.table.name, r.table.idColumn)

	if _, err := r.db.ExecContext(ctx, query, c.AccountID, c.Digest, c.Salt, c.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the record for accountID and reports how many rows went away.
func (r *PostgresRepository) Delete(ctx context.Context, accountID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table.name, r.table.idColumn)

	res, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
