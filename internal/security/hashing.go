package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost keeps interactive login in the tens of milliseconds.
const DefaultCost = 10

// Hasher hashes and verifies passwords using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost (4–31). Cost 10 is the
// default for interactive login.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password with a per-call random salt.
// Returns the hash as a string suitable for storage.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies password against the stored hash using constant-time
// comparison. Returns nil on match, bcrypt.ErrMismatchedHashAndPassword on
// mismatch, and another error only for a malformed stored hash.
func (h *Hasher) Compare(hash string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), password)
}

// Matches reports whether password matches the stored hash. A mismatch is not
// an error; the error return is reserved for a malformed stored hash.
func (h *Hasher) Matches(hash string, password []byte) (bool, error) {
	err := h.Compare(hash, password)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
