// Package session defines the session store port: one opaque token per user
// with a sliding expiration window.
package session

import "context"

// Store issues, validates, and refreshes session tokens. Token state lives
// independently of the ledger; the only coordination required is that a
// session must be valid before a ledger mutation is attempted.
type Store interface {
	// SetSession generates a fresh random opaque token for userID and stores
	// it with the configured TTL, overwriting any previous token: a user has
	// a single active session.
	SetSession(ctx context.Context, userID int64) (string, error)

	// ValidateUserSession reports whether token is the user's current,
	// unexpired session token. An expired token behaves exactly like an
	// absent one.
	ValidateUserSession(ctx context.Context, userID int64, token string) (bool, error)

	// ExtendSession resets the TTL countdown without changing the token.
	// A no-op when no session exists.
	ExtendSession(ctx context.Context, userID int64) error
}
