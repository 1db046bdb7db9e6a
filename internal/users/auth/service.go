// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/sec"
	"github.com/bayaniph/bayani/pkg/uuidv7"
)

// TokenProvider is the JWT generation dependency.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the account and session use-cases.
//
// # Review Process
//
// Changes to hashing, registration, or token logic are security-sensitive
// and require a second reviewer.
type Service struct {
	users    UserStore
	sessions SessionStore
	resets   TokenStore
	verifies TokenStore
	tokens   TokenProvider
}

// NewService wires the auth service.
func NewService(users UserStore, sessions SessionStore, resets, verifies TokenStore, tokens TokenProvider) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		resets:   resets,
		verifies: verifies,
		tokens:   tokens,
	}
}

// # Registration

// RegisterInput holds the data for enrolling a new account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register validates uniqueness, hashes the password, and persists the
// account. A verification token is stored as a best-effort side effect.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// Uniqueness checks surface client-safe conflicts before any write.
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
		IsVerified:   false,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// TODO: hand the verification token to the mailer once it exists.
	if token, err := sec.GenerateSecureToken(VerificationTokenLength); err == nil {
		_ = service.verifies.Set(ctx, token, user.ID, VerificationTokenTTL)
	}

	return user, nil
}

// # Login & Sessions

// LoginInput holds one authentication attempt. Login accepts either the
// username or the email.
type LoginInput struct {
	Login     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login verifies credentials and opens a tracked session.
//
// Lookup failures and password mismatches return the same generic message
// to prevent account enumeration.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Login)
	if err != nil {
		user, err = service.users.FindByUsername(ctx, input.Login)
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.openSession(ctx, user, input.UserAgent, input.IPAddress)
}

// Logout revokes the session behind a refresh token. Unknown tokens are a
// successful no-op so logout stays idempotent.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// RefreshSession rotates a refresh token: the presented token's session is
// revoked before a new pair is issued, so a replayed token dies on arrival.
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.openSession(ctx, user, userAgent, ipAddress)
}

// openSession issues the access/refresh pair and persists the tracking row.
func (service *Service) openSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

// RequestPasswordReset starts the forgot-password flow and returns the
// token destined for the email link. Unknown emails return an empty token
// without error, again to prevent enumeration.
func (service *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resets.Set(ctx, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

// ResetPassword completes the forgot-password flow and revokes every live
// session of the account.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := service.resets.Get(ctx, token)
	if err != nil {
		return err
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	_ = service.sessions.RevokeAll(ctx, userID)
	_ = service.resets.Delete(ctx, token)

	return nil
}

// ChangePassword rotates an authenticated user's password and logs out
// every other device.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth_service_change_update_failed: %w", err)
	}

	if session, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(currentRefreshToken)); err == nil {
		_ = service.sessions.RevokeOthers(ctx, userID, session.ID)
	}

	return nil
}

// VerifyEmail confirms email ownership via a verification token.
func (service *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := service.verifies.Get(ctx, token)
	if err != nil {
		return err
	}

	if err := service.users.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	_ = service.verifies.Delete(ctx, token)
	return nil
}
