package credential

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"runtime"

	"github.com/dmitrijs2005/mercury/internal/common"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/semaphore"
)

// randomBytes is a seam for tests.
var randomBytes = common.GenerateRandByteArray

// Hasher derives and verifies digests. The key derivation is CPU bound, so at
// most `workers` derivations run at the same time; callers beyond that wait
// for a slot.
type Hasher struct {
	params Params
	sem    *semaphore.Weighted
}

// NewHasher builds a Hasher. workers <= 0 means runtime.GOMAXPROCS(0).
func NewHasher(p Params, workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Hasher{params: p, sem: semaphore.NewWeighted(int64(workers))}
}

// Params returns the parameters the hasher was built with.
func (h *Hasher) Params() Params { return h.params }

// Digest is the deterministic kernel: hex(PBKDF2(secret, salt)).
// The salt is used as its textual (base64) form, not decoded.
func Digest(p Params, secret, salt string) string {
	key := pbkdf2.Key([]byte(secret), []byte(salt), p.Iterations, p.KeyLength, p.Hash)
	return hex.EncodeToString(key)
}

// NewSalt returns p.SaltLength random bytes, base64 encoded.
func NewSalt(p Params) string {
	return base64.StdEncoding.EncodeToString(randomBytes(p.SaltLength))
}

// Hash salts and digests secret. Non-string secrets are converted with
// fmt.Sprint, so Hash(ctx, 12345, s) and Hash(ctx, "12345", s) agree.
// An empty salt means a fresh one is generated.
//
// A nil secret yields common.ErrInvalidArgument. The only other error is ctx
// ending while waiting for a worker slot.
func (h *Hasher) Hash(ctx context.Context, secret any, salt string) (Credential, error) {
	if secret == nil {
		return Credential{}, fmt.Errorf("%w: secret is required", common.ErrInvalidArgument)
	}
	if salt == "" {
		salt = NewSalt(h.params)
	}

	digest, err := h.derive(ctx, fmt.Sprint(secret), salt)
	if err != nil {
		return Credential{}, err
	}

	return Credential{Salt: salt, Digest: digest}, nil
}

// Verify reports whether candidate hashes to digest under salt.
// An absent candidate (nil or empty) is rejected without running the KDF.
//
// The comparison is plain string equality, not constant time. A ctx that
// ends while waiting for a worker also yields false; callers that need to
// tell the two apart check ctx.Err().
func (h *Hasher) Verify(ctx context.Context, candidate any, salt, digest string) bool {
	if candidate == nil {
		return false
	}
	text := fmt.Sprint(candidate)
	if text == "" {
		return false
	}

	got, err := h.derive(ctx, text, salt)
	if err != nil {
		return false
	}

	return got == digest
}

func (h *Hasher) derive(ctx context.Context, secret, salt string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	return Digest(h.params, secret, salt), nil
}
