package mail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/models"
)

// Store is the database queue of undelivered emails.
type Store interface {
	Create(ctx context.Context, e *models.StoredEmail) (int64, error)
	List(ctx context.Context) ([]*models.StoredEmail, error)
	IncrementRetry(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Manager fronts a Sender with store-and-forward. While offline, or when a
// delivery fails, messages go to the Store, or to the FileOutbox when the
// Store fails too. Flush redelivers them once Verify succeeds again.
type Manager struct {
	sender Sender
	store  Store
	outbox *FileOutbox
	from   string
	log    logging.Logger

	online  atomic.Bool
	flushMu sync.Mutex
}

func NewManager(sender Sender, store Store, outbox *FileOutbox, from string, l logging.Logger) *Manager {
	return &Manager{
		sender: sender,
		store:  store,
		outbox: outbox,
		from:   from,
		log:    l.With("module", "mail"),
	}
}

// From is the default sender address.
func (m *Manager) From() string {
	return m.from
}

func (m *Manager) Online() bool {
	return m.online.Load()
}

// Verify checks the backend and updates the online status accordingly.
func (m *Manager) Verify(ctx context.Context) error {
	if err := m.sender.Verify(ctx); err != nil {
		if m.online.Swap(false) {
			m.log.Warn(ctx, "email service went offline", "error", err)
		}
		return err
	}
	if !m.online.Swap(true) {
		m.log.Info(ctx, "email service online")
	}
	return nil
}

// Send delivers msg, filling From when empty. When the message had to be
// queued the returned error wraps ErrOffline; any other error means it was
// neither delivered nor queued.
func (m *Manager) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = m.from
	}
	if err := msg.validate(); err != nil {
		return err
	}

	if m.online.Load() {
		err := m.sender.Send(ctx, msg)
		if err == nil {
			return nil
		}
		m.online.Store(false)
		m.log.Warn(ctx, "email delivery failed, queueing", "to", msg.To, "error", err)
	}

	if err := m.queue(ctx, msg); err != nil {
		return err
	}
	return fmt.Errorf("email to %s queued: %w", msg.To, ErrOffline)
}

func (m *Manager) queue(ctx context.Context, msg *Message) error {
	_, err := m.store.Create(ctx, &models.StoredEmail{
		To:      msg.To,
		From:    msg.From,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err == nil {
		return nil
	}

	m.log.Error(ctx, "failed to store email, using file outbox", "error", err)
	if ferr := m.outbox.Append(*msg); ferr != nil {
		return errors.Join(fmt.Errorf("store email: %w", err), ferr)
	}
	return nil
}

// FlushResult counts the outcome of one Flush.
type FlushResult struct {
	Sent   int
	Failed int
}

// Flush verifies the backend and, when it is reachable, redelivers every
// stored email. Delivered rows are deleted; failed ones get their retry
// counter bumped. The file outbox is drained afterwards.
func (m *Manager) Flush(ctx context.Context) (FlushResult, error) {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	var res FlushResult
	if err := m.Verify(ctx); err != nil {
		return res, fmt.Errorf("%w: %v", ErrOffline, err)
	}

	stored, err := m.store.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list stored emails: %w", err)
	}

	for _, e := range stored {
		msg := &Message{To: e.To, From: e.From, Subject: e.Subject, Text: e.Text, HTML: e.HTML}
		if err := m.sender.Send(ctx, msg); err != nil {
			res.Failed++
			m.log.Warn(ctx, "stored email redelivery failed", "id", e.ID, "retry_count", e.RetryCount+1, "error", err)
			if err := m.store.IncrementRetry(ctx, e.ID); err != nil {
				m.log.Error(ctx, "failed to bump retry counter", "id", e.ID, "error", err)
			}
			continue
		}
		res.Sent++
		if err := m.store.Delete(ctx, e.ID); err != nil {
			m.log.Error(ctx, "failed to delete delivered email", "id", e.ID, "error", err)
		}
	}

	var fileFailed int
	sent, err := m.outbox.Drain(func(msg Message) error {
		if err := m.sender.Send(ctx, &msg); err != nil {
			fileFailed++
			return err
		}
		return nil
	})
	res.Sent += sent
	res.Failed += fileFailed
	if err != nil {
		return res, err
	}

	if res.Sent > 0 || res.Failed > 0 {
		m.log.Info(ctx, "stored emails flushed", "sent", res.Sent, "failed", res.Failed)
	}
	return res, nil
}

// FlushStored runs Flush for the scheduler. A backend that is still offline
// is expected and not reported as a failure.
func (m *Manager) FlushStored(ctx context.Context) error {
	_, err := m.Flush(ctx)
	if errors.Is(err, ErrOffline) {
		m.log.Debug(ctx, "email service still offline, stored emails kept")
		return nil
	}
	return err
}
