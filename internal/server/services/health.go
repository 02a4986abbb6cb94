package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/slack"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// MailVerifier checks the mail backend.
type MailVerifier interface {
	Verify(ctx context.Context) error
}

// HealthNotifier delivers the health report.
type HealthNotifier interface {
	Send(ctx context.Context, msg *slack.Message) error
}

// HealthService checks the mail backend and the database and reports both to
// the team Slack channel.
type HealthService struct {
	db       Pinger
	mailer   MailVerifier
	notifier HealthNotifier
	logger   logging.Logger
}

// NewHealthService builds the service. A nil notifier means no webhook is
// configured and SendHealthCheck fails with common.ErrSlackHookMissing.
func NewHealthService(db Pinger, mailer MailVerifier, notifier HealthNotifier, l logging.Logger) *HealthService {
	return &HealthService{db: db, mailer: mailer, notifier: notifier, logger: l.With("module", "health")}
}

// SendHealthCheck checks email and the database, posts the report and
// returns what it found. A failed check is reported, not returned.
func (s *HealthService) SendHealthCheck(ctx context.Context) (slack.Status, error) {
	if s.notifier == nil {
		return slack.Status{}, common.ErrSlackHookMissing
	}

	var st slack.Status
	if err := s.mailer.Verify(ctx); err != nil {
		s.logger.Warn(ctx, "health check: email offline", "error", err)
	} else {
		st.Email = true
	}
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check: database offline", "error", err)
	} else {
		st.Database = true
	}

	if err := s.notifier.Send(ctx, slack.HealthReport(st, slack.CurrentSystem())); err != nil {
		return st, fmt.Errorf("error sending health check: %w", err)
	}
	return st, nil
}
