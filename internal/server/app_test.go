package server

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/config"
	gs "github.com/dmitrijs2005/mercury/internal/server/grpc"
	"github.com/dmitrijs2005/mercury/internal/server/jobs"
	"github.com/dmitrijs2005/mercury/internal/server/mail"
	"github.com/dmitrijs2005/mercury/internal/server/slack"
)

func TestNewMailSender(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	s, err := newMailSender(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &mail.SMTPSender{}, s)

	cfg.EmailService = "pigeon"
	_, err = newMailSender(context.Background(), cfg)
	assert.Error(t, err)
}

func TestHealthNotifier(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, healthNotifier(cfg))

	cfg.SlackWebhook = "https://hooks.slack.example/T0"
	assert.IsType(t, &slack.Notifier{}, healthNotifier(cfg))
}

func TestNewApp_DBOpenError(t *testing.T) {
	orig := sqlOpen
	defer func() { sqlOpen = orig }()
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }

	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "db init error")
}

func TestApp_Run_StopsOnCancelAndReleases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	logger := logging.New(logging.BackendSlog, io.Discard)
	scheduler, err := jobs.NewScheduler(logger)
	require.NoError(t, err)

	app := &App{
		config:    &config.Config{},
		logger:    logger,
		db:        db,
		scheduler: scheduler,
		server:    gs.NewGRPCServer("127.0.0.1:0", logger, nil, nil, nil, nil, "secret"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
