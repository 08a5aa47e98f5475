// Package password provides one-way adaptive password hashing built on
// bcrypt. Stored passwords are always digests; the plaintext never
// reaches the database.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with a configurable work
// factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A cost of zero falls back to
// bcrypt.DefaultCost; tests use bcrypt.MinCost to stay fast.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
