// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package content

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/bayaniph/bayani/internal/platform/constants"
)

// RemoteSource is the read surface of the remote CMS client.
//
// Defined here rather than in the client package so the resolver can be
// exercised with fakes and so the dependency arrow points inward.
type RemoteSource interface {
	AllPeople(ctx context.Context) (Collection[Person], error)
	PersonBySlug(ctx context.Context, slug string) (*Person, error)
	PeopleByCategory(ctx context.Context, categorySlug string) (Collection[Person], error)
	SearchPeople(ctx context.Context, query string) (Collection[Person], error)
	FeaturedPeople(ctx context.Context, limit int) (Collection[Person], error)
	AllCategories(ctx context.Context) (Collection[Category], error)
	TimelineEvents(ctx context.Context, personSlug string) (Collection[TimelineEvent], error)
}

// SourceFactory builds a remote source on demand.
//
// Construction can fail (credentials not yet fetchable); the resolver treats
// a factory failure exactly like a query failure and serves fallback data.
type SourceFactory func(ctx context.Context) (RemoteSource, error)

// Resolver routes every catalogue read to the remote source, falling back to
// the built-in dataset whenever the remote path fails.
//
// # Transparency
//
// No operation returns an error. Callers always receive usable catalogue
// data and cannot tell which source produced it; the switch is only visible
// in the logs. This keeps browsing alive through CMS outages at the cost of
// potentially stale content, which for a biography catalogue is the right
// trade.
type Resolver struct {
	factory  SourceFactory
	fallback *FallbackDataset
	logger   *slog.Logger

	// Memoized source so credentials are resolved once, not per request.
	// Holds a pointer-to-interface because atomic.Pointer needs a concrete
	// element type.
	source atomic.Pointer[RemoteSource]
}

// NewResolver creates a resolver. A nil logger falls back to slog.Default.
func NewResolver(factory SourceFactory, fallback *FallbackDataset, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		factory:  factory,
		fallback: fallback,
		logger:   logger,
	}
}

// acquire returns the memoized remote source, building it on first use.
// Factory failures are not memoized, so later requests retry.
func (r *Resolver) acquire(ctx context.Context) (RemoteSource, error) {
	if src := r.source.Load(); src != nil {
		return *src, nil
	}

	src, err := r.factory(ctx)
	if err != nil {
		return nil, err
	}

	r.source.Store(&src)
	return src, nil
}

// withFallback runs one remote operation with a bounded timeout and serves
// the local equivalent on any failure.
func withFallback[T any](ctx context.Context, r *Resolver, operation string, remote func(context.Context, RemoteSource) (T, error), local func() T) T {
	src, err := r.acquire(ctx)
	if err == nil {
		opCtx, cancel := context.WithTimeout(ctx, constants.ContentSourceTimeout)
		defer cancel()

		result, remoteErr := remote(opCtx, src)
		if remoteErr == nil {
			return result
		}
		err = remoteErr
	}

	r.logger.WarnContext(ctx, "content_source_fallback",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return local()
}

// # Catalogue Operations

// GetAllPeople returns every profile, newest first.
func (r *Resolver) GetAllPeople(ctx context.Context) Collection[Person] {
	return withFallback(ctx, r, "get_all_people",
		func(ctx context.Context, src RemoteSource) (Collection[Person], error) {
			return src.AllPeople(ctx)
		},
		r.fallback.AllPeople,
	)
}

// GetPersonBySlug returns one profile or nil when the slug is unknown to the
// serving source.
func (r *Resolver) GetPersonBySlug(ctx context.Context, slug string) *Person {
	return withFallback(ctx, r, "get_person_by_slug",
		func(ctx context.Context, src RemoteSource) (*Person, error) {
			return src.PersonBySlug(ctx, slug)
		},
		func() *Person { return r.fallback.PersonBySlug(slug) },
	)
}

// GetPeopleByCategory returns profiles filed under the given category slug.
func (r *Resolver) GetPeopleByCategory(ctx context.Context, categorySlug string) Collection[Person] {
	return withFallback(ctx, r, "get_people_by_category",
		func(ctx context.Context, src RemoteSource) (Collection[Person], error) {
			return src.PeopleByCategory(ctx, categorySlug)
		},
		func() Collection[Person] { return r.fallback.PeopleByCategory(categorySlug) },
	)
}

// SearchPeople performs a free-text profile search.
func (r *Resolver) SearchPeople(ctx context.Context, query string) Collection[Person] {
	return withFallback(ctx, r, "search_people",
		func(ctx context.Context, src RemoteSource) (Collection[Person], error) {
			return src.SearchPeople(ctx, query)
		},
		func() Collection[Person] { return r.fallback.SearchPeople(query) },
	)
}

// GetFeaturedPeople returns up to limit featured profiles.
func (r *Resolver) GetFeaturedPeople(ctx context.Context, limit int) Collection[Person] {
	return withFallback(ctx, r, "get_featured_people",
		func(ctx context.Context, src RemoteSource) (Collection[Person], error) {
			return src.FeaturedPeople(ctx, limit)
		},
		func() Collection[Person] { return r.fallback.FeaturedPeople(limit) },
	)
}

// GetAllCategories returns every category, ordered by name.
func (r *Resolver) GetAllCategories(ctx context.Context) Collection[Category] {
	return withFallback(ctx, r, "get_all_categories",
		func(ctx context.Context, src RemoteSource) (Collection[Category], error) {
			return src.AllCategories(ctx)
		},
		r.fallback.AllCategories,
	)
}

// GetTimelineEvents returns one person's milestones, oldest first.
func (r *Resolver) GetTimelineEvents(ctx context.Context, personSlug string) Collection[TimelineEvent] {
	return withFallback(ctx, r, "get_timeline_events",
		func(ctx context.Context, src RemoteSource) (Collection[TimelineEvent], error) {
			return src.TimelineEvents(ctx, personSlug)
		},
		func() Collection[TimelineEvent] { return r.fallback.TimelineEvents(personSlug) },
	)
}
