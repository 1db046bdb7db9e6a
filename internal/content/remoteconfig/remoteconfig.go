// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Package remoteconfig retrieves and caches the credentials for the remote
// content source.
//
// # Architecture
//
// CMS credentials are not baked into the binary. They are served by a small
// config endpoint so they can be rotated without a redeploy. This package
// fetches them lazily on first use and caches only successful results: a
// failed fetch is never cached, so the next caller retries instead of being
// stuck with a poisoned nil forever.
package remoteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/bayaniph/bayani/internal/platform/constants"
)

// Config holds the credentials needed to query the content delivery API.
type Config struct {
	SpaceID            string `json:"spaceId"`
	AccessToken        string `json:"accessToken"`
	PreviewAccessToken string `json:"previewAccessToken,omitempty"`
	Environment        string `json:"environment"`
}

// Valid reports whether the config carries the two mandatory credentials.
func (c *Config) Valid() bool {
	return c != nil && c.SpaceID != "" && c.AccessToken != ""
}

// ConfigError wraps any failure to obtain usable credentials.
type ConfigError struct {
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remoteconfig: %s: %v", e.Reason, e.Cause)
	}
	return "remoteconfig: " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// # Caching Cell

// Cache is a write-once credentials cell.
//
// # Concurrency
//
// The cached value lives in an atomic.Pointer. Concurrent first calls may
// each issue a fetch; whichever succeeds first publishes the value and later
// successes are simply discarded. This avoids a mutex on the hot read path
// where every catalogue request consults the cache.
type Cache struct {
	endpoint string
	client   *http.Client

	value atomic.Pointer[Config]
}

// NewCache creates a credentials cache backed by the given config endpoint.
// A nil httpClient falls back to a client with the standard fetch timeout.
func NewCache(endpoint string, httpClient *http.Client) *Cache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ConfigFetchTimeout}
	}
	return &Cache{endpoint: endpoint, client: httpClient}
}

// Prime seeds the cache with statically configured credentials, bypassing the
// endpoint entirely. Invalid configs are ignored.
func (c *Cache) Prime(cfg Config) {
	if !cfg.Valid() {
		return
	}
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
	c.value.Store(&cfg)
}

// Cached returns the cached credentials without fetching, or nil.
func (c *Cache) Cached() *Config {
	return c.value.Load()
}

// Get returns the cached credentials, fetching them on first use.
//
// # Failure Semantics
//
// Failures are returned to the caller but never stored, so a transient
// endpoint outage at boot does not permanently disable the remote source.
func (c *Cache) Get(ctx context.Context) (*Config, error) {
	if cfg := c.value.Load(); cfg != nil {
		return cfg, nil
	}

	cfg, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.value.Store(cfg)
	return cfg, nil
}

// fetch performs one HTTP round trip against the config endpoint.
func (c *Cache) fetch(ctx context.Context) (*Config, error) {
	if c.endpoint == "" {
		return nil, &ConfigError{Reason: "no config endpoint configured"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid config endpoint", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ConfigError{Reason: "config endpoint unreachable", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, &ConfigError{Reason: "failed to read config response", Cause: err}
	}

	// The endpoint reports failures as {"error": "..."} payloads, sometimes
	// with a 200 status, so the body is inspected regardless of the code.
	var payload struct {
		Config
		ErrorMessage string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ConfigError{Reason: "malformed config response", Cause: err}
	}

	if payload.ErrorMessage != "" {
		return nil, &ConfigError{Reason: "config endpoint error: " + payload.ErrorMessage}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ConfigError{Reason: fmt.Sprintf("config endpoint returned status %d", resp.StatusCode)}
	}

	cfg := payload.Config
	if !cfg.Valid() {
		return nil, &ConfigError{Reason: "config response missing spaceId or accessToken"}
	}
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}

	return &cfg, nil
}
