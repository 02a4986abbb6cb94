package codes

import (
	"context"
	"crypto/sha512"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/credential"
	"github.com/dmitrijs2005/mercury/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that records every call.
type memStore struct {
	mu      sync.Mutex
	rows    map[int64]models.Code
	ops     []string
	findErr error
	insErr  error
	delErr  error
}

func newMemStore() *memStore { return &memStore{rows: map[int64]models.Code{}} }

func (s *memStore) Find(_ context.Context, id int64) (*models.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "find")
	if s.findErr != nil {
		return nil, s.findErr
	}
	rec, ok := s.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (s *memStore) Insert(_ context.Context, c *models.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "insert")
	if s.insErr != nil {
		return s.insErr
	}
	if _, dup := s.rows[c.AccountID]; dup {
		return errors.New("duplicate key")
	}
	s.rows[c.AccountID] = *c
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "delete")
	if s.delErr != nil {
		return 0, s.delErr
	}
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func (s *memStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ops)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func testHasher() *credential.Hasher {
	return credential.NewHasher(credential.Params{
		Iterations: 2,
		KeyLength:  32,
		SaltLength: 16,
		Hash:       sha512.New,
	}, 4)
}

func newTestManager(p Purpose) (*Manager, *memStore) {
	st := newMemStore()
	return NewManager(p, st, testHasher()), st
}

func str(code int64) string { return strconv.FormatInt(code, 10) }

func TestRandomCode_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		c := randomCode()
		require.GreaterOrEqual(t, c, minCode)
		require.LessOrEqual(t, c, maxCode)
		require.Len(t, str(c), 13)
	}
}

func TestCreate_PersistsHashedRecord(t *testing.T) {
	m, st := newTestManager(PurposeVerification)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	code, err := m.Create(context.Background(), 7)
	require.NoError(t, err)

	rec, ok := st.rows[7]
	require.True(t, ok)
	assert.Equal(t, PurposeVerification, rec.Purpose)
	assert.Equal(t, int64(7), rec.AccountID)
	assert.NotEmpty(t, rec.Salt)
	assert.NotEmpty(t, rec.Digest)
	assert.NotContains(t, rec.Digest, str(code))
	assert.Equal(t, fixed, rec.CreatedAt)
	assert.Equal(t, []string{"delete", "insert"}, st.ops)
}

func TestCreate_AtMostOneOutstanding(t *testing.T) {
	m, st := newTestManager(PurposeVerification)
	ctx := context.Background()

	var codes []int64
	for i := 0; i < 3; i++ {
		c, err := m.Create(ctx, 1)
		require.NoError(t, err)
		codes = append(codes, c)
	}
	require.Len(t, st.rows, 1)

	for _, stale := range codes[:2] {
		if stale == codes[2] {
			continue
		}
		ok, err := m.Consume(ctx, 1, str(stale))
		require.NoError(t, err)
		assert.False(t, ok, "superseded code %d must not verify", stale)
	}

	ok, err := m.Consume(ctx, 1, str(codes[2]))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsume_WrongCodeKeepsRecord(t *testing.T) {
	m, st := newTestManager(PurposeVerification)
	ctx := context.Background()

	code, err := m.Create(ctx, 3)
	require.NoError(t, err)

	ok, err := m.Consume(ctx, 3, str(code)+"1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, st.rows, int64(3))

	ok, err = m.Consume(ctx, 3, str(code))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsume_VerificationLeavesRecordForCaller(t *testing.T) {
	m, st := newTestManager(PurposeVerification)
	ctx := context.Background()

	code, err := m.Create(ctx, 4)
	require.NoError(t, err)

	ok, err := m.Consume(ctx, 4, str(code))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, st.rows, int64(4))

	require.NoError(t, m.Invalidate(ctx, 4))
	assert.NotContains(t, st.rows, int64(4))
}

func TestResetFlow(t *testing.T) {
	m, st := newTestManager(PurposePasswordReset)
	ctx := context.Background()

	code, err := m.Create(ctx, 9)
	require.NoError(t, err)

	id, err := m.Exists(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	ok, err := m.Consume(ctx, 9, str(code))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, st.rows)

	_, err = m.Consume(ctx, 9, str(code))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCrossPurposeIsolation(t *testing.T) {
	verifyStore, resetStore := newMemStore(), newMemStore()
	h := testHasher()
	verify := NewManager(PurposeVerification, verifyStore, h)
	reset := NewManager(PurposePasswordReset, resetStore, h)
	ctx := context.Background()

	vc, err := verify.Create(ctx, 5)
	require.NoError(t, err)
	rc, err := reset.Create(ctx, 5)
	require.NoError(t, err)

	if vc != rc {
		ok, err := verify.Consume(ctx, 5, str(rc))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = reset.Consume(ctx, 5, str(vc))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// Even a record with a colliding digest is rejected when it carries the
	// other purpose.
	rec := verifyStore.rows[5]
	rec.Purpose = PurposePasswordReset
	verifyStore.rows[5] = rec
	_, err = verify.Consume(ctx, 5, str(vc))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExists(t *testing.T) {
	m, st := newTestManager(PurposePasswordReset)
	ctx := context.Background()

	_, err := m.Exists(ctx, 2)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	st.rows[2] = models.Code{Purpose: PurposePasswordReset, AccountID: 0, Digest: "d", Salt: "s"}
	_, err = m.Exists(ctx, 2)
	assert.ErrorIs(t, err, common.ErrorNotFound, "null foreign key counts as missing")

	st.rows[2] = models.Code{Purpose: PurposePasswordReset, AccountID: 2, Digest: "d", Salt: "s"}
	id, err := m.Exists(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestInvalidAccountID_NoStoreIO(t *testing.T) {
	m, st := newTestManager(PurposeVerification)
	ctx := context.Background()

	for _, id := range []int64{0, -1} {
		_, err := m.Create(ctx, id)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)

		_, err = m.Consume(ctx, id, "123")
		assert.ErrorIs(t, err, common.ErrInvalidArgument)

		_, err = m.Exists(ctx, id)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)

		err = m.Invalidate(ctx, id)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	}

	assert.Zero(t, st.calls())
}

func TestParseAccountID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"", 0, true},
		{"NaN", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"1.5", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseAccountID(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, common.ErrInvalidArgument, "input %q", tc.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestStoreErrorsPropagateUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("create delete", func(t *testing.T) {
		m, st := newTestManager(PurposeVerification)
		st.delErr = errBoom{}
		_, err := m.Create(ctx, 1)
		assert.Equal(t, errBoom{}, err)
		assert.Equal(t, []string{"delete"}, st.ops, "insert must not run after a failed delete")
	})

	t.Run("create insert", func(t *testing.T) {
		m, st := newTestManager(PurposeVerification)
		st.insErr = errBoom{}
		_, err := m.Create(ctx, 1)
		assert.Equal(t, errBoom{}, err)
	})

	t.Run("consume find", func(t *testing.T) {
		m, st := newTestManager(PurposeVerification)
		st.findErr = errBoom{}
		_, err := m.Consume(ctx, 1, "1")
		assert.Equal(t, errBoom{}, err)
	})

	t.Run("reset consume delete", func(t *testing.T) {
		m, st := newTestManager(PurposePasswordReset)
		code, err := m.Create(ctx, 1)
		require.NoError(t, err)
		st.delErr = errBoom{}
		ok, err := m.Consume(ctx, 1, str(code))
		assert.False(t, ok)
		assert.Equal(t, errBoom{}, err)
	})
}

func TestCreate_UsesInjectedGenerator(t *testing.T) {
	m, _ := newTestManager(PurposeVerification)
	m.newCode = func() int64 { return 1234567890123 }

	code, err := m.Create(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123), code)

	ok, err := m.Consume(context.Background(), 1, "1234567890123")
	require.NoError(t, err)
	assert.True(t, ok)
}
