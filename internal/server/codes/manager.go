// Package codes issues and checks single-use numeric codes scoped to one
// account and one purpose (email verification, password reset).
//
// Codes are stored hashed with the same credential.Hasher used for passwords.
// Per (account, purpose) at most one code is outstanding: Create always deletes
// the previous record before inserting the new one.
package codes

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/credential"
	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type Purpose = models.CodePurpose

const (
	PurposeVerification  = models.PurposeVerification
	PurposePasswordReset = models.PurposePasswordReset
)

const (
	minCode int64 = 1_000_000_000_000
	maxCode int64 = 9_999_999_999_999
)

// Store is the persistence capability the Manager needs for one purpose.
// Find returns common.ErrorNotFound when no record exists.
type Store interface {
	Find(ctx context.Context, accountID int64) (*models.Code, error)
	Insert(ctx context.Context, code *models.Code) error
	Delete(ctx context.Context, accountID int64) (int64, error)
}

// Manager handles codes of a single purpose. It trusts its caller to have
// checked that the account exists, and performs no logging or retries.
type Manager struct {
	purpose Purpose
	store   Store
	hasher  *credential.Hasher
	newCode func() int64
	now     func() time.Time
}

func NewManager(purpose Purpose, store Store, hasher *credential.Hasher) *Manager {
	return &Manager{
		purpose: purpose,
		store:   store,
		hasher:  hasher,
		newCode: randomCode,
		now:     time.Now,
	}
}

// randomCode is not cryptographically strong; codes are hashed at rest and
// validated by the surrounding flow.
func randomCode() int64 {
	return minCode + rand.Int64N(maxCode-minCode+1)
}

func (m *Manager) Purpose() Purpose { return m.purpose }

// Create issues a new code for accountID, replacing any outstanding one, and
// returns the plaintext code. Store errors are returned unchanged.
func (m *Manager) Create(ctx context.Context, accountID int64) (int64, error) {
	if err := checkAccountID(accountID); err != nil {
		return 0, err
	}

	code := m.newCode()

	cred, err := m.hasher.Hash(ctx, code, "")
	if err != nil {
		return 0, err
	}

	if _, err := m.store.Delete(ctx, accountID); err != nil {
		return 0, err
	}

	rec := &models.Code{
		Purpose:   m.purpose,
		AccountID: accountID,
		Digest:    cred.Digest,
		Salt:      cred.Salt,
		CreatedAt: m.now(),
	}
	if err := m.store.Insert(ctx, rec); err != nil {
		return 0, err
	}

	return code, nil
}

// Consume checks submitted against the outstanding code. A missing record is
// common.ErrorNotFound; a wrong code is (false, nil) and leaves the record in
// place.
//
// On success a password reset code is deleted here. A verification code is
// not: the verification flow removes it itself, after marking the account.
func (m *Manager) Consume(ctx context.Context, accountID int64, submitted string) (bool, error) {
	if err := checkAccountID(accountID); err != nil {
		return false, err
	}

	rec, err := m.find(ctx, accountID)
	if err != nil {
		return false, err
	}

	if !m.hasher.Verify(ctx, submitted, rec.Salt, rec.Digest) {
		return false, nil
	}

	if m.purpose == PurposePasswordReset {
		if _, err := m.store.Delete(ctx, accountID); err != nil {
			return false, err
		}
	}

	return true, nil
}

// Exists returns the owning account id of the outstanding code, or
// common.ErrorNotFound if there is none or its foreign key is null.
func (m *Manager) Exists(ctx context.Context, accountID int64) (int64, error) {
	if err := checkAccountID(accountID); err != nil {
		return 0, err
	}

	rec, err := m.find(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return rec.AccountID, nil
}

// Invalidate removes the outstanding code, if any.
func (m *Manager) Invalidate(ctx context.Context, accountID int64) error {
	if err := checkAccountID(accountID); err != nil {
		return err
	}

	_, err := m.store.Delete(ctx, accountID)
	return err
}

func (m *Manager) find(ctx context.Context, accountID int64) (*models.Code, error) {
	rec, err := m.store.Find(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.AccountID <= 0 || rec.Purpose != m.purpose {
		return nil, common.ErrorNotFound
	}
	return rec, nil
}

func checkAccountID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: account id must be a positive integer, got %d", common.ErrInvalidArgument, id)
	}
	return nil
}

// ParseAccountID converts wire input into an account id, rejecting anything
// that is not a positive integer.
func ParseAccountID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("%w: account id %q: %v", common.ErrInvalidArgument, s, err)
	}
	if err := checkAccountID(id); err != nil {
		return 0, err
	}
	return id, nil
}
