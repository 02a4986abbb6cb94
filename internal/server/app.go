// Package server wires the Mercury backend together: database and
// migrations, the mail manager with its retry job, the services and the gRPC
// endpoint. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mercury/internal/credential"
	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/config"
	gs "github.com/dmitrijs2005/mercury/internal/server/grpc"
	"github.com/dmitrijs2005/mercury/internal/server/jobs"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mercury/internal/server/services"
	"github.com/dmitrijs2005/mercury/internal/server/slack"
)

var sqlOpen = sql.Open

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	mailer    *mail.Manager
	scheduler *jobs.Scheduler
	server    *gs.GRPCServer
}

// newMailSender picks the delivery backend named by cfg.EmailService.
func newMailSender(ctx context.Context, cfg *config.Config) (mail.Sender, error) {
	switch cfg.EmailService {
	case config.EmailServiceSMTP:
		return mail.NewSMTPSender(mail.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.EmailAddress,
			Password:    cfg.EmailPassword,
			ImplicitTLS: cfg.SMTPImplicitTLS,
		})
	case config.EmailServiceSES:
		return mail.NewSESSender(ctx, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown email service %q", cfg.EmailService)
	}
}

// healthNotifier returns nil when no webhook is configured.
func healthNotifier(cfg *config.Config) services.HealthNotifier {
	if cfg.SlackWebhook == "" {
		return nil
	}
	return slack.NewNotifier(cfg.SlackWebhook)
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.LogBackend, os.Stdout)

	db, err := sqlOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, multierr.Append(fmt.Errorf("migrations error: %w", err), db.Close())
	}

	sender, err := newMailSender(ctx, cfg)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("mail init error: %w", err), db.Close())
	}

	mailer := mail.NewManager(sender, rm.StoredEmails(db), mail.NewFileOutbox(cfg.EmailStoredFile), cfg.EmailAddress, logger)
	if err := mailer.Verify(ctx); err != nil {
		logger.Warn(ctx, "mail service offline, emails will be queued", "error", err)
	}

	scheduler, err := jobs.NewScheduler(logger)
	if err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	if err := scheduler.Register(jobs.StoredEmailFlush(mailer, cfg.EmailRetryInterval)); err != nil {
		return nil, multierr.Combine(err, scheduler.Shutdown(), db.Close())
	}

	hasher := credential.NewHasher(credential.DefaultParams(), cfg.HashWorkers)

	vs := services.NewVolunteerService(db, rm, hasher, mailer, cfg, logger)
	ps := services.NewProjectService(db, rm, cfg)
	es := services.NewEmailService(db, rm, mailer)
	hs := services.NewHealthService(db, mailer, healthNotifier(cfg), logger)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		mailer:    mailer,
		scheduler: scheduler,
		server:    gs.NewGRPCServer(cfg.EndpointAddrGRPC, logger, vs, ps, es, hs, cfg.SecretKey),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or the server fails, then
// releases every resource.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.scheduler.Start()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	app.logger.Info(context.Background(), "Stopping app...")
	return multierr.Combine(err, app.close())
}

func (app *App) close() error {
	err := multierr.Combine(app.scheduler.Shutdown(), app.db.Close())
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		// Sync on stdout returns EINVAL on some platforms.
		_ = s.Sync()
	}
	return err
}
