// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/sec"
)

// # In-Memory Fakes

type memoryUserStore struct {
	users map[string]*User // keyed by ID
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]*User{}}
}

func (store *memoryUserStore) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := store.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (store *memoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (store *memoryUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found with this username")
}

func (store *memoryUserStore) Create(_ context.Context, user *User) error {
	store.users[user.ID] = user
	return nil
}

func (store *memoryUserStore) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.PasswordHash = newHash
	return nil
}

func (store *memoryUserStore) MarkVerified(_ context.Context, userID string) error {
	user, ok := store.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.IsVerified = true
	return nil
}

type memorySessionStore struct {
	sessions map[string]*Session // keyed by ID
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]*Session{}}
}

func (store *memorySessionStore) Create(_ context.Context, session *Session) error {
	store.sessions[session.ID] = session
	return nil
}

func (store *memorySessionStore) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, session := range store.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.Unauthorized("Session is invalid or expired")
}

func (store *memorySessionStore) Revoke(_ context.Context, sessionID string) error {
	if session, ok := store.sessions[sessionID]; ok {
		session.IsRevoked = true
	}
	return nil
}

func (store *memorySessionStore) RevokeAll(_ context.Context, userID string) error {
	for _, session := range store.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (store *memorySessionStore) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range store.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (store *memorySessionStore) DeleteExpired(_ context.Context) error {
	for id, session := range store.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(store.sessions, id)
		}
	}
	return nil
}

func (store *memorySessionStore) live(userID string) int {
	count := 0
	for _, session := range store.sessions {
		if session.UserID == userID && !session.IsRevoked {
			count++
		}
	}
	return count
}

type memoryTokenStore struct {
	tokens map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: map[string]string{}}
}

func (store *memoryTokenStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	store.tokens[token] = userID
	return nil
}

func (store *memoryTokenStore) Get(_ context.Context, token string) (string, error) {
	if userID, ok := store.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token is invalid or expired")
}

func (store *memoryTokenStore) Delete(_ context.Context, token string) error {
	delete(store.tokens, token)
	return nil
}

type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-token-for-" + userID, nil
}

// # Harness

type serviceHarness struct {
	service  *Service
	users    *memoryUserStore
	sessions *memorySessionStore
	resets   *memoryTokenStore
	verifies *memoryTokenStore
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()
	harness := &serviceHarness{
		users:    newMemoryUserStore(),
		sessions: newMemorySessionStore(),
		resets:   newMemoryTokenStore(),
		verifies: newMemoryTokenStore(),
	}
	harness.service = NewService(harness.users, harness.sessions, harness.resets, harness.verifies, staticTokenProvider{})
	return harness
}

func (harness *serviceHarness) register(t *testing.T, username, email, password string) *User {
	t.Helper()
	user, err := harness.service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, code, appError.Code)
}

// # Tests

/*
TestService_Register checks account creation and the uniqueness conflicts.
*/
func TestService_Register(t *testing.T) {
	harness := newServiceHarness(t)

	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "noli-me-tangere", user.PasswordHash)

	// A verification token was staged for the new account.
	assert.Len(t, harness.verifies.tokens, 1)

	_, err := harness.service.Register(context.Background(), RegisterInput{
		Username: "another", Email: "jose@bayani.ph", Password: "password123",
	})
	assertErrCode(t, err, "CONFLICT")

	_, err = harness.service.Register(context.Background(), RegisterInput{
		Username: "jrizal", Email: "other@bayani.ph", Password: "password123",
	})
	assertErrCode(t, err, "CONFLICT")
}

/*
TestService_Login covers username and email logins plus the enumeration-safe
failure mode: a wrong password and an unknown account yield the same error.
*/
func TestService_Login(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	byEmail, err := harness.service.Login(context.Background(), LoginInput{
		Login: "jose@bayani.ph", Password: "noli-me-tangere",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.User.ID)
	assert.NotEmpty(t, byEmail.AccessToken)
	assert.NotEmpty(t, byEmail.RefreshToken)

	byUsername, err := harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	require.NoError(t, err)
	assert.NotEqual(t, byEmail.RefreshToken, byUsername.RefreshToken)

	_, wrongPassword := harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "wrong",
	})
	_, unknownUser := harness.service.Login(context.Background(), LoginInput{
		Login: "nobody", Password: "wrong",
	})
	assertErrCode(t, wrongPassword, "UNAUTHORIZED")
	assertErrCode(t, unknownUser, "UNAUTHORIZED")
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

/*
TestService_RefreshSession_Rotation proves a refresh token is single-use: the
first refresh succeeds and issues a new pair, the replay is rejected.
*/
func TestService_RefreshSession_Rotation(t *testing.T) {
	harness := newServiceHarness(t)
	harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	login, err := harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	require.NoError(t, err)

	refreshed, err := harness.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, replay := harness.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	assertErrCode(t, replay, "UNAUTHORIZED")

	// The rotated token still works.
	_, err = harness.service.RefreshSession(context.Background(), refreshed.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
}

/*
TestService_Logout revokes the presented session and stays idempotent for
unknown tokens.
*/
func TestService_Logout(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	login, err := harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	require.NoError(t, err)
	require.Equal(t, 1, harness.sessions.live(user.ID))

	require.NoError(t, harness.service.Logout(context.Background(), login.RefreshToken))
	assert.Equal(t, 0, harness.sessions.live(user.ID))

	require.NoError(t, harness.service.Logout(context.Background(), login.RefreshToken))
	require.NoError(t, harness.service.Logout(context.Background(), "never-issued"))
}

/*
TestService_PasswordReset walks the full forgot-password flow and verifies
every session dies with the old password.
*/
func TestService_PasswordReset(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	for i := 0; i < 2; i++ {
		_, err := harness.service.Login(context.Background(), LoginInput{
			Login: "jrizal", Password: "noli-me-tangere",
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, harness.sessions.live(user.ID))

	token, err := harness.service.RequestPasswordReset(context.Background(), "jose@bayani.ph")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Unknown emails get no token and no error.
	ghost, err := harness.service.RequestPasswordReset(context.Background(), "ghost@bayani.ph")
	require.NoError(t, err)
	assert.Empty(t, ghost)

	require.NoError(t, harness.service.ResetPassword(context.Background(), token, "el-filibusterismo"))
	assert.Equal(t, 0, harness.sessions.live(user.ID))

	// The token is single-use.
	err = harness.service.ResetPassword(context.Background(), token, "another-password")
	assertErrCode(t, err, "NOT_FOUND")

	_, err = harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	assertErrCode(t, err, "UNAUTHORIZED")

	_, err = harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "el-filibusterismo",
	})
	require.NoError(t, err)
}

/*
TestService_ChangePassword requires the current password and logs out every
other device while keeping the current session alive.
*/
func TestService_ChangePassword(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	current, err := harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	require.NoError(t, err)
	_, err = harness.service.Login(context.Background(), LoginInput{
		Login: "jrizal", Password: "noli-me-tangere",
	})
	require.NoError(t, err)
	require.Equal(t, 2, harness.sessions.live(user.ID))

	err = harness.service.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1", current.RefreshToken)
	assertErrCode(t, err, "UNAUTHORIZED")

	err = harness.service.ChangePassword(context.Background(), user.ID, "noli-me-tangere", "new-password-1", current.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, harness.sessions.live(user.ID))

	_, err = harness.service.RefreshSession(context.Background(), current.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
}

/*
TestService_VerifyEmail consumes the verification token staged at registration.
*/
func TestService_VerifyEmail(t *testing.T) {
	harness := newServiceHarness(t)
	user := harness.register(t, "jrizal", "jose@bayani.ph", "noli-me-tangere")

	var token string
	for stored := range harness.verifies.tokens {
		token = stored
	}
	require.NotEmpty(t, token)

	require.NoError(t, harness.service.VerifyEmail(context.Background(), token))
	assert.True(t, harness.users.users[user.ID].IsVerified)

	err := harness.service.VerifyEmail(context.Background(), token)
	require.True(t, errors.As(err, new(*apperr.AppError)))
}
