package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mercury/internal/server/validation"
)

// EmailManager is what EmailService needs from mail.Manager.
type EmailManager interface {
	Mailer
	Online() bool
	Verify(ctx context.Context) error
	Flush(ctx context.Context) (mail.FlushResult, error)
}

// EmailService backs the contact form and the stored-email admin tools.
type EmailService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mailer      EmailManager
}

func NewEmailService(db *sql.DB, rm repomanager.RepositoryManager, mailer EmailManager) *EmailService {
	return &EmailService{db: db, repomanager: rm, mailer: mailer}
}

// ContactUs forwards a contact form submission to the team inbox. When the
// mail service is offline the submission is queued and an error wrapping
// mail.ErrOffline is returned.
func (s *EmailService) ContactUs(ctx context.Context, name, email, subject, body string) error {
	if err := validation.ContactUs(name, email, subject, body); err != nil {
		return err
	}

	msg, err := mail.ContactUsEmail(s.mailer.From(), mail.ContactUsData{
		Name: name, Email: email, Subject: subject, Body: body,
	})
	if err != nil {
		return fmt.Errorf("error rendering contact email: %w", err)
	}
	return s.mailer.Send(ctx, msg)
}

func (s *EmailService) Online() bool {
	return s.mailer.Online()
}

// Reverify checks the mail backend and brings the service back online when
// it answers.
func (s *EmailService) Reverify(ctx context.Context) error {
	if err := s.mailer.Verify(ctx); err != nil {
		return fmt.Errorf("%w: %v", mail.ErrOffline, err)
	}
	return nil
}

func (s *EmailService) StoredEmails(ctx context.Context) ([]*models.StoredEmail, error) {
	list, err := s.repomanager.StoredEmails(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing stored emails: %w", err)
	}
	return list, nil
}

func (s *EmailService) RemoveStoredEmail(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: stored email id must be positive", common.ErrInvalidArgument)
	}
	return s.repomanager.StoredEmails(s.db).Delete(ctx, id)
}

// UpdateStoredEmail rewrites the addressing and content of a queued email.
// Empty fields keep their stored value.
func (s *EmailService) UpdateStoredEmail(ctx context.Context, upd *models.StoredEmail) error {
	if upd.ID <= 0 {
		return fmt.Errorf("%w: stored email id must be positive", common.ErrInvalidArgument)
	}
	repo := s.repomanager.StoredEmails(s.db)

	cur, err := repo.Get(ctx, upd.ID)
	if err != nil {
		return err
	}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&cur.To, upd.To},
		{&cur.From, upd.From},
		{&cur.Subject, upd.Subject},
		{&cur.Text, upd.Text},
		{&cur.HTML, upd.HTML},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return repo.Update(ctx, cur)
}

// Flush redelivers stored emails now instead of waiting for the scheduler.
func (s *EmailService) Flush(ctx context.Context) (mail.FlushResult, error) {
	return s.mailer.Flush(ctx)
}
