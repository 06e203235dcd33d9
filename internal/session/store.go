// Package session tracks the single live refresh token per identity in a fast
// key-value store with expiry. Issuing a new refresh token overwrites the
// prior record, so an older token stops being usable for session continuation
// even before it expires.
package session

import (
	"context"
	"time"
)

const keyPrefix = "userRefreshToken: "

// Key returns the refresh record key for an identity id.
func Key(userID string) string { return keyPrefix + userID }

// Store holds at most one live refresh record per identity.
type Store interface {
	// Set writes the refresh token for userID with the given TTL, overwriting
	// any prior record. The overwrite is the only mutual-exclusion boundary:
	// last writer wins.
	Set(ctx context.Context, userID, token string, ttl time.Duration) error
	// Get returns the live refresh token for userID. ok is false when no
	// record exists or it has expired.
	Get(ctx context.Context, userID string) (token string, ok bool, err error)
	// Delete removes the record for userID. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, userID string) error
}
