// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package remoteconfig_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/content/remoteconfig"
)

/*
TestCache_Get_FetchesOnceAndCaches verifies that a successful fetch is cached
and the endpoint is not hit again on subsequent calls.
*/
func TestCache_Get_FetchesOnceAndCaches(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spaceId":"space123","accessToken":"token456","environment":"master"}`))
	}))
	defer server.Close()

	cache := remoteconfig.NewCache(server.URL, server.Client())

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "space123", first.SpaceID)
	assert.Equal(t, "token456", first.AccessToken)

	second, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Equal(t, int32(1), hits.Load(), "only the first Get should hit the endpoint")
}

/*
TestCache_Get_FailureIsNotCached verifies that an endpoint failure is retried
on the next call instead of being stored.
*/
func TestCache_Get_FailureIsNotCached(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"secrets not configured"}`))
			return
		}
		_, _ = w.Write([]byte(`{"spaceId":"space123","accessToken":"token456"}`))
	}))
	defer server.Close()

	cache := remoteconfig.NewCache(server.URL, server.Client())

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	var cfgErr *remoteconfig.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "secrets not configured")

	// Second call must retry and succeed.
	cfg, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "space123", cfg.SpaceID)
	assert.Equal(t, "master", cfg.Environment, "environment defaults when omitted")
	assert.Equal(t, int32(2), hits.Load())
}

/*
TestCache_Get_ErrorPayloadWith200 checks that an {"error": ...} body is
treated as a failure even when the endpoint responds 200 OK.
*/
func TestCache_Get_ErrorPayloadWith200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"credentials rotated"}`))
	}))
	defer server.Close()

	cache := remoteconfig.NewCache(server.URL, server.Client())

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.Nil(t, cache.Cached())
}

/*
TestCache_Get_MissingCredentials checks that a syntactically valid payload
without the mandatory fields is rejected.
*/
func TestCache_Get_MissingCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"environment":"staging"}`))
	}))
	defer server.Close()

	cache := remoteconfig.NewCache(server.URL, server.Client())

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	var cfgErr *remoteconfig.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "missing spaceId or accessToken")
}

/*
TestCache_Prime verifies that statically configured credentials bypass the
endpoint entirely.
*/
func TestCache_Prime(t *testing.T) {
	cache := remoteconfig.NewCache("http://config.invalid", nil)

	cache.Prime(remoteconfig.Config{SpaceID: "static-space", AccessToken: "static-token"})

	cfg, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-space", cfg.SpaceID)
	assert.Equal(t, "master", cfg.Environment)
}

/*
TestCache_Prime_IgnoresInvalid checks that priming with incomplete
credentials is a no-op.
*/
func TestCache_Prime_IgnoresInvalid(t *testing.T) {
	cache := remoteconfig.NewCache("http://config.invalid", nil)

	cache.Prime(remoteconfig.Config{SpaceID: "only-space"})
	assert.Nil(t, cache.Cached())
}
