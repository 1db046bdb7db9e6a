// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package people

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/bayaniph/bayani/internal/platform/constants"
)

// ViewCounter tracks profile view deltas in Redis.
//
// # Why deltas?
//
// The CMS owns the authoritative viewCount field, but editorial publishes
// are too slow a channel for per-request increments. The counter therefore
// accumulates views locally and the read path merges them on top of the CMS
// figure. Counts survive API restarts but not a Redis flush, which is an
// acceptable loss for a popularity signal.
type ViewCounter struct {
	client *redis.Client
}

// NewViewCounter creates a counter backed by the given Redis client.
func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

func viewKey(slug string) string {
	return constants.RedisPrefixViewCount + slug
}

// Increment bumps one profile's view delta and returns the new delta.
func (vc *ViewCounter) Increment(ctx context.Context, slug string) (int64, error) {
	return vc.client.Incr(ctx, viewKey(slug)).Result()
}

// Delta returns one profile's accumulated view delta.
func (vc *ViewCounter) Delta(ctx context.Context, slug string) (int64, error) {
	raw, err := vc.client.Get(ctx, viewKey(slug)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// Snapshot returns the view deltas for many profiles in one round trip.
// Missing keys map to zero.
func (vc *ViewCounter) Snapshot(ctx context.Context, slugs []string) (map[string]int64, error) {
	if len(slugs) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = viewKey(slug)
	}

	values, err := vc.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]int64, len(slugs))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			deltas[slugs[i]] = n
		}
	}

	return deltas, nil
}
