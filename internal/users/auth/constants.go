// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import "time"

// # Token Lifetimes

const (
	// AccessTokenTTL keeps JWTs short-lived to limit leaked-token damage.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL keeps sessions alive for a month of inactivity.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// ResetTokenTTL bounds the forgot-password window.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random reset token.
	ResetTokenLength = 32

	// VerificationTokenTTL allows a day to click the verification email.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the verification token.
	VerificationTokenLength = 32
)
