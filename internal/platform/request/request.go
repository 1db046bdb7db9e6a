// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Package request provides helpers for extracting and decoding inputs from
// incoming HTTP requests.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/ctxutil"
	"github.com/bayaniph/bayani/internal/platform/sec"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// # Body Decoding

// DecodeJSON reads and decodes the request body into dst.
//
// It enforces a size limit and rejects unknown fields so typos in client
// payloads fail loudly instead of being silently dropped.
func DecodeJSON(writer http.ResponseWriter, request *http.Request, dst interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.ValidationError("Request body must not be empty")
		case errors.As(err, &maxBytesErr):
			return apperr.ValidationError("Request body is too large")
		default:
			return apperr.ValidationError("Invalid JSON payload")
		}
	}

	// Reject trailing garbage after the first JSON value
	if decoder.More() {
		return apperr.ValidationError("Request body must contain a single JSON object")
	}

	return nil
}

// # Route Parameters

// Param returns a named chi URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// ID returns the "id" URL parameter, which most resource routes use.
func ID(request *http.Request) string {
	return chi.URLParam(request, "id")
}

// # Identity Extraction

// Claims returns the verified auth claims attached by the authentication
// middleware, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the verified auth claims or an Unauthorized error.
// Handlers behind RequireAuth can still use this as a defensive accessor.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's ID or an Unauthorized error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
