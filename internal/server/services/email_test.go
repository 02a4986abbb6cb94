package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmailService(t *testing.T) (*EmailService, *fakeRepoManager, *fakeMailer) {
	t.Helper()
	rm := newFakeRepoManager()
	mailer := &fakeMailer{online: true}
	return NewEmailService(txDB(t), rm, mailer), rm, mailer
}

func TestEmailService_ContactUs(t *testing.T) {
	s, _, mailer := newEmailService(t)
	ctx := context.Background()

	require.NoError(t, s.ContactUs(ctx, "Ann", "ann@example.org", "Volunteering", "I would like to help."))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "team@mercury.example", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Text, "ann@example.org")

	assert.ErrorIs(t, s.ContactUs(ctx, "Ann", "ann@example.org", "Hi", "no"), common.ErrInvalidArgument)
	assert.Len(t, mailer.sent, 1)

	mailer.sendErr = fmt.Errorf("queued: %w", mail.ErrOffline)
	assert.ErrorIs(t, s.ContactUs(ctx, "Ann", "ann@example.org", "Hi", "Hello again"), mail.ErrOffline)
}

func TestEmailService_StatusAndReverify(t *testing.T) {
	s, _, mailer := newEmailService(t)
	ctx := context.Background()

	assert.True(t, s.Online())
	require.NoError(t, s.Reverify(ctx))

	mailer.verErr = errors.New("dial tcp: refused")
	assert.ErrorIs(t, s.Reverify(ctx), mail.ErrOffline)

	res, err := s.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.True(t, mailer.flushed)
}

func TestEmailService_StoredEmailAdmin(t *testing.T) {
	s, rm, _ := newEmailService(t)
	ctx := context.Background()
	rm.storedEmails.rows[1] = &models.StoredEmail{ID: 1, To: "old@example.org", From: "team@mercury.example", Subject: "s", Text: "t"}

	list, err := s.StoredEmails(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.UpdateStoredEmail(ctx, &models.StoredEmail{ID: 1, To: "new@example.org"}))
	assert.Equal(t, "new@example.org", rm.storedEmails.updated.To)
	assert.Equal(t, "s", rm.storedEmails.updated.Subject, "empty fields keep stored value")

	assert.ErrorIs(t, s.UpdateStoredEmail(ctx, &models.StoredEmail{ID: 2, To: "x@example.org"}), common.ErrorNotFound)
	assert.ErrorIs(t, s.UpdateStoredEmail(ctx, &models.StoredEmail{}), common.ErrInvalidArgument)

	require.NoError(t, s.RemoveStoredEmail(ctx, 1))
	assert.Equal(t, []int64{1}, rm.storedEmails.deleted)
	assert.ErrorIs(t, s.RemoveStoredEmail(ctx, -1), common.ErrInvalidArgument)
}
