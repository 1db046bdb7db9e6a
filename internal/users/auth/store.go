// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import (
	"context"
	"time"
)

// # Persistence Contracts

// UserStore is the account persistence contract.
type UserStore interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new account.
	Create(ctx context.Context, user *User) error

	// UpdatePassword replaces only the account's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// MarkVerified flips the account to verified.
	MarkVerified(ctx context.Context, userID string) error
}

// SessionStore is the refresh-token session persistence contract.
type SessionStore interface {
	// Create persists a new session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns the live (non-revoked, non-expired) session
	// matching the hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke invalidates one session permanently.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeAll invalidates every session of one account.
	RevokeAll(ctx context.Context, userID string) error

	// RevokeOthers invalidates every session of one account except the
	// current one. Used after a password change.
	RevokeOthers(ctx context.Context, userID, currentSessionID string) error

	// DeleteExpired physically removes sessions past their expiry.
	DeleteExpired(ctx context.Context) error
}

// TokenStore holds short-lived single-use tokens (password reset, email
// verification) mapping token → user ID with a TTL.
type TokenStore interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
