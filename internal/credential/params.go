// Package credential turns plaintext secrets (passwords, one-time codes) into
// salted PBKDF2 digests and verifies candidates against stored digests.
//
// Every secret, regardless of kind, goes through the same Params so that
// one-time codes receive the same protection at rest as login passwords.
package credential

import (
	"crypto/sha512"
	"hash"
)

// Params fixes the key-derivation parameterization. Changing any field
// invalidates every digest produced with the previous values.
type Params struct {
	Iterations int
	KeyLength  int
	SaltLength int
	Hash       func() hash.Hash
}

// DefaultParams returns the production parameters: PBKDF2-SHA512,
// 28000 rounds, 512 byte key, 128 byte salt.
func DefaultParams() Params {
	return Params{
		Iterations: 28000,
		KeyLength:  512,
		SaltLength: 128,
		Hash:       sha512.New,
	}
}

// Credential is a salted digest ready for storage. Salt is base64, Digest is hex.
type Credential struct {
	Salt   string
	Digest string
}
