// Package services holds the server-side business logic behind the gRPC
// handlers: volunteer accounts, projects, and email.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/credential"
	"github.com/dmitrijs2005/mercury/internal/dbx"
	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/auth"
	"github.com/dmitrijs2005/mercury/internal/server/codes"
	"github.com/dmitrijs2005/mercury/internal/server/config"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
)

// Mailer sends one email. mail.Manager implements it; a returned error
// wrapping mail.ErrOffline means the message was queued for later.
type Mailer interface {
	Send(ctx context.Context, msg *mail.Message) error
	From() string
}

// VolunteerService covers the volunteer account lifecycle: registration and
// email verification, login, password reset and change, and notifications.
type VolunteerService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        *credential.Hasher
	mailer        Mailer
	jwtSecret     []byte
	tokenValidity time.Duration
	onlineAddress string
	log           logging.Logger
}

func NewVolunteerService(db *sql.DB, rm repomanager.RepositoryManager, hasher *credential.Hasher,
	mailer Mailer, cfg *config.Config, l logging.Logger) *VolunteerService {
	return &VolunteerService{
		db:            db,
		repomanager:   rm,
		hasher:        hasher,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		onlineAddress: strings.TrimRight(cfg.OnlineAddress, "/"),
		log:           l.With("module", "volunteer_service"),
	}
}

func (s *VolunteerService) codes(db dbx.DBTX, purpose codes.Purpose) *codes.Manager {
	return codes.NewManager(purpose, s.repomanager.Codes(db, purpose), s.hasher)
}

func (s *VolunteerService) byUsername(ctx context.Context, username string) (*models.Volunteer, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrInvalidArgument)
	}
	v, err := s.repomanager.Volunteers(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error getting volunteer: %w", err)
	}
	return v, nil
}

func (s *VolunteerService) link(kind, username string, code int64) string {
	return fmt.Sprintf("%s/%s/%s/%d", s.onlineAddress, kind, username, code)
}

// notify sends msg; a queued message is logged and not treated as failure.
func (s *VolunteerService) notify(ctx context.Context, msg *mail.Message) error {
	err := s.mailer.Send(ctx, msg)
	if errors.Is(err, mail.ErrOffline) {
		s.log.Warn(ctx, "email queued while service is offline", "to", msg.To)
		return nil
	}
	return err
}

func (s *VolunteerService) sendVerification(ctx context.Context, v *models.Volunteer, code int64) error {
	msg, err := mail.VerificationEmail(v.Email, mail.LinkData{
		Name: v.Name, Username: v.Username, Link: s.link("verify", v.Username, code),
	})
	if err != nil {
		return fmt.Errorf("error rendering verification email: %w", err)
	}
	return s.notify(ctx, msg)
}

type registered struct {
	volunteer *models.Volunteer
	code      int64
}

// Register validates in, stores the volunteer with a hashed password, issues
// a verification code in the same transaction and mails the verification
// link.
func (s *VolunteerService) Register(ctx context.Context, in validation.Registration) (*models.Volunteer, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	cred, err := s.hasher.Hash(ctx, in.Password, "")
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	res, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (registered, error) {
		v, err := s.repomanager.Volunteers(tx).Create(ctx, &models.Volunteer{
			Username: in.Username,
			Email:    in.Email,
			Name:     in.Name,
			Password: cred.Digest,
			Salt:     cred.Salt,
		})
		if err != nil {
			return registered{}, fmt.Errorf("error creating volunteer: %w", err)
		}
		code, err := s.codes(tx, codes.PurposeVerification).Create(ctx, v.ID)
		if err != nil {
			return registered{}, fmt.Errorf("error creating verification code: %w", err)
		}
		return registered{volunteer: v, code: code}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "volunteer registered", "id", res.volunteer.ID, "username", res.volunteer.Username)

	if err := s.sendVerification(ctx, res.volunteer, res.code); err != nil {
		return nil, fmt.Errorf("error sending verification email: %w", err)
	}
	return res.volunteer, nil
}

// Login checks the password and returns a signed access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *VolunteerService) Login(ctx context.Context, username, password string) (string, error) {
	v, err := s.byUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorUnauthorized
	}
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(ctx, password, v.Salt, v.Password) {
		return "", rejected(ctx)
	}
	if !v.Verified {
		return "", common.ErrorNotVerified
	}

	token, err := auth.GenerateToken(auth.Identity{ID: v.ID, Username: v.Username}, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// rejected is the error for a failed password check. Verify also reports
// false when ctx ends before hashing, which must not read as a wrong password.
func rejected(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return common.ErrorUnauthorized
}

func codeNotFound(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorCodeNotFound
	}
	return err
}

// Verify checks the emailed verification code and marks the volunteer as
// verified, removing the code.
func (s *VolunteerService) Verify(ctx context.Context, username, code string) error {
	v, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		m := s.codes(tx, codes.PurposeVerification)

		id, err := m.Exists(ctx, v.ID)
		if err != nil {
			return codeNotFound(err)
		}
		ok, err := m.Consume(ctx, id, code)
		if err != nil {
			return codeNotFound(err)
		}
		if !ok {
			return common.ErrorInvalidCode
		}
		if err := m.Invalidate(ctx, id); err != nil {
			return fmt.Errorf("error removing verification code: %w", err)
		}
		if err := s.repomanager.Volunteers(tx).MarkVerified(ctx, id); err != nil {
			return fmt.Errorf("error marking volunteer verified: %w", err)
		}
		return nil
	})
}

// ResendVerification replaces the outstanding verification code and mails
// a fresh link.
func (s *VolunteerService) ResendVerification(ctx context.Context, username string) error {
	v, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}
	if v.Verified {
		return common.ErrorAlreadyVerified
	}

	code, err := s.codes(s.db, codes.PurposeVerification).Create(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("error creating verification code: %w", err)
	}
	return s.sendVerification(ctx, v, code)
}

// RequestPasswordReset mails a reset link when email matches the one on
// record.
func (s *VolunteerService) RequestPasswordReset(ctx context.Context, username, email string) error {
	v, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(email), v.Email) {
		return common.ErrorEmailMismatch
	}

	code, err := s.codes(s.db, codes.PurposePasswordReset).Create(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("error creating password reset code: %w", err)
	}

	msg, err := mail.PasswordResetEmail(v.Email, mail.LinkData{
		Name: v.Name, Username: v.Username, Link: s.link("reset", v.Username, code),
	})
	if err != nil {
		return fmt.Errorf("error rendering password reset email: %w", err)
	}
	return s.notify(ctx, msg)
}

// CheckResetCode reports whether a password reset is outstanding.
func (s *VolunteerService) CheckResetCode(ctx context.Context, username string) error {
	v, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}
	_, err = s.codes(s.db, codes.PurposePasswordReset).Exists(ctx, v.ID)
	return codeNotFound(err)
}

func (s *VolunteerService) setPassword(ctx context.Context, tx dbx.DBTX, id int64, password string) error {
	cred, err := s.hasher.Hash(ctx, password, "")
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.repomanager.Volunteers(tx).UpdatePassword(ctx, id, cred.Digest, cred.Salt); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// ResetPassword consumes the emailed reset code and sets newPassword under a
// fresh salt.
func (s *VolunteerService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return err
	}
	v, err := s.byUsername(ctx, username)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		m := s.codes(tx, codes.PurposePasswordReset)

		id, err := m.Exists(ctx, v.ID)
		if err != nil {
			return codeNotFound(err)
		}
		ok, err := m.Consume(ctx, id, code)
		if err != nil {
			return codeNotFound(err)
		}
		if !ok {
			return common.ErrorInvalidCode
		}
		return s.setPassword(ctx, tx, id, newPassword)
	})
}

// UpdatePassword changes the password of a logged-in volunteer after
// checking the current one.
func (s *VolunteerService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return err
	}
	v, err := s.byUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorUnauthorized
	}
	if err != nil {
		return err
	}
	if !s.hasher.Verify(ctx, oldPassword, v.Salt, v.Password) {
		return rejected(ctx)
	}
	return s.setPassword(ctx, s.db, v.ID, newPassword)
}

// IsAdmin reports whether the volunteer may use the admin portal operations.
func (s *VolunteerService) IsAdmin(ctx context.Context, volunteerID int64) (bool, error) {
	ok, err := s.repomanager.Volunteers(s.db).CanAccessAdminPortal(ctx, volunteerID)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	return ok, err
}

func (s *VolunteerService) Notifications(ctx context.Context, volunteerID int64) ([]*models.Notification, error) {
	n, err := s.repomanager.Notifications(s.db).ListActive(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	return n, nil
}

func (s *VolunteerService) DismissNotification(ctx context.Context, volunteerID, notificationID int64) error {
	if notificationID <= 0 {
		return fmt.Errorf("%w: notification id must be positive", common.ErrInvalidArgument)
	}
	return s.repomanager.Notifications(s.db).Dismiss(ctx, volunteerID, notificationID)
}
