// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/dberr"
)

// # User Store

// PostgresUserStore implements [UserStore] on pgx.
//
// Storage errors like pgx.ErrNoRows are mapped to [apperr.AppError] values
// so callers never see driver types.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates the PostgreSQL-backed user store.
func NewUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `id, username, email, password_hash, display_name, avatar_url, role, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *PostgresUserStore) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := store.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		// Concurrent registrations can slip past the service-level checks;
		// the unique indexes make the race a clean conflict.
		return dberr.Wrap(err, "create user")
	}

	return nil
}

func (store *PostgresUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return store.findOne(ctx, query, id, "User not found")
}

func (store *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	return store.findOne(ctx, query, email, "User not found with this email")
}

func (store *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL`
	return store.findOne(ctx, query, username, "User not found with this username")
}

func (store *PostgresUserStore) findOne(ctx context.Context, query, arg, notFoundMsg string) (*User, error) {
	user, err := scanUser(store.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(notFoundMsg)
		}
		return nil, fmt.Errorf("auth_store_find_user_failed: %w", err)
	}
	return user, nil
}

func (store *PostgresUserStore) UpdatePassword(ctx context.Context, userID, newHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("auth_store_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (store *PostgresUserStore) MarkVerified(ctx context.Context, userID string) error {
	const query = `UPDATE users SET is_verified = TRUE, updated_at = now() WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("auth_store_mark_verified_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// # Session Store

// PostgresSessionStore implements [SessionStore] on pgx.
type PostgresSessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates the PostgreSQL-backed session store.
func NewSessionStore(pool *pgxpool.Pool) *PostgresSessionStore {
	return &PostgresSessionStore{pool: pool}
}

func (store *PostgresSessionStore) Create(ctx context.Context, session *Session) error {
	const query = `
		INSERT INTO auth_sessions (id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`

	_, err := store.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
	)
	if err != nil {
		return fmt.Errorf("auth_store_create_session_failed: %w", err)
	}
	return nil
}

func (store *PostgresSessionStore) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at
		FROM auth_sessions
		WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > now()`

	session := &Session{}
	err := store.pool.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("auth_store_find_session_failed: %w", err)
	}
	return session, nil
}

func (store *PostgresSessionStore) Revoke(ctx context.Context, sessionID string) error {
	const query = `UPDATE auth_sessions SET is_revoked = TRUE WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("auth_store_revoke_session_failed: %w", err)
	}
	return nil
}

func (store *PostgresSessionStore) RevokeAll(ctx context.Context, userID string) error {
	const query = `UPDATE auth_sessions SET is_revoked = TRUE WHERE user_id = $1`

	if _, err := store.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("auth_store_revoke_all_failed: %w", err)
	}
	return nil
}

func (store *PostgresSessionStore) RevokeOthers(ctx context.Context, userID, currentSessionID string) error {
	const query = `UPDATE auth_sessions SET is_revoked = TRUE WHERE user_id = $1 AND id <> $2`

	if _, err := store.pool.Exec(ctx, query, userID, currentSessionID); err != nil {
		return fmt.Errorf("auth_store_revoke_others_failed: %w", err)
	}
	return nil
}

func (store *PostgresSessionStore) DeleteExpired(ctx context.Context) error {
	const query = `DELETE FROM auth_sessions WHERE expires_at < now()`

	if _, err := store.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("auth_store_delete_expired_failed: %w", err)
	}
	return nil
}
