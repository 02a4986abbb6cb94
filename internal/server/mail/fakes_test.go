package mail

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/mercury/internal/logging"
	"github.com/dmitrijs2005/mercury/internal/server/models"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger          { return n }

var errBoom = errors.New("boom")

type fakeSender struct {
	mu        sync.Mutex
	sent      []Message
	verifyErr error
	sendErr   error
	failTo    map[string]bool // recipients that bounce
}

func (f *fakeSender) Send(_ context.Context, msg *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil || f.failTo[msg.To] {
		return errBoom
	}
	f.sent = append(f.sent, *msg)
	return nil
}

func (f *fakeSender) Verify(context.Context) error {
	return f.verifyErr
}

type memStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]*models.StoredEmail
	failAll error
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]*models.StoredEmail{}}
}

func (s *memStore) Create(_ context.Context, e *models.StoredEmail) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return 0, s.failAll
	}
	s.nextID++
	cp := *e
	cp.ID = s.nextID
	s.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (s *memStore) List(context.Context) ([]*models.StoredEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	var out []*models.StoredEmail
	for id := int64(1); id <= s.nextID; id++ {
		if e, ok := s.rows[id]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) IncrementRetry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[id].RetryCount++
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}
