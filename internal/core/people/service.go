// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package people is the public catalogue domain: profile listing, lookup,
featured selections, categories, and autocomplete.

Catalogue data comes from the content resolver (remote CMS with built-in
fallback); view counters come from Redis. The service merges the two so
callers see a single coherent Person.
*/
package people

import (
	"context"
	"log/slog"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/ctxutil"
	"github.com/bayaniph/bayani/internal/platform/validate"
	"github.com/bayaniph/bayani/internal/search"
	"github.com/bayaniph/bayani/pkg/pagination"
)

// DefaultFeaturedLimit matches the curated section size on the landing page.
const DefaultFeaturedLimit = 6

// MaxFeaturedLimit bounds the featured query.
const MaxFeaturedLimit = 24

// Service implements the catalogue use-cases.
type Service struct {
	resolver *content.Resolver
	views    *ViewCounter
}

// NewService creates the catalogue service. views may be nil, which
// disables counter merging (counts then reflect the CMS figure only).
func NewService(resolver *content.Resolver, views *ViewCounter) *Service {
	return &Service{resolver: resolver, views: views}
}

// List returns one page of profiles filtered and sorted per the given
// facets. The projection runs over the full resolved catalogue so sort and
// filter semantics are identical to search sessions.
func (s *Service) List(ctx context.Context, filters search.Filters, page pagination.Params) (search.Projection, pagination.Meta, error) {
	col := s.resolver.GetAllPeople(ctx)
	s.mergeViewDeltas(ctx, col.Items)

	proj := search.Project(col.Items, filters)
	meta := pagination.NewMeta(page.Page, page.Limit, proj.Total)

	return proj.Page(page), meta, nil
}

// GetBySlug returns one profile and registers the view.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*content.Person, error) {
	v := &validate.Validator{}
	if err := v.Required("slug", slug).Slug("slug", slug).Err(); err != nil {
		return nil, err
	}

	person := s.resolver.GetPersonBySlug(ctx, slug)
	if person == nil {
		return nil, apperr.NotFound("Person")
	}

	s.registerView(ctx, person)
	return person, nil
}

// Featured returns the curated profile selection.
func (s *Service) Featured(ctx context.Context, limit int) ([]content.Person, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}

	col := s.resolver.GetFeaturedPeople(ctx, limit)
	s.mergeViewDeltas(ctx, col.Items)
	return col.Items, nil
}

// ByCategory returns the profiles filed under a category slug. An unknown
// slug yields an empty list, not an error.
func (s *Service) ByCategory(ctx context.Context, categorySlug string) ([]content.Person, error) {
	v := &validate.Validator{}
	if err := v.Required("slug", categorySlug).Slug("slug", categorySlug).Err(); err != nil {
		return nil, err
	}

	col := s.resolver.GetPeopleByCategory(ctx, categorySlug)
	s.mergeViewDeltas(ctx, col.Items)
	return col.Items, nil
}

// Categories returns every category, ordered by name.
func (s *Service) Categories(ctx context.Context) ([]content.Category, error) {
	col := s.resolver.GetAllCategories(ctx)
	return col.Items, nil
}

// Suggest produces autocomplete entries for the given query. Queries below
// the trigger length yield an empty list rather than an error.
func (s *Service) Suggest(ctx context.Context, query string) ([]search.Suggestion, error) {
	people := s.resolver.GetAllPeople(ctx)
	categories := s.resolver.GetAllCategories(ctx)
	return search.Suggest(people.Items, categories.Items, query), nil
}

// # View Counter Merging

// registerView bumps the profile's counter and folds the delta into the
// returned count. Counter failures are logged, never surfaced: a view count
// is not worth failing a profile page over.
func (s *Service) registerView(ctx context.Context, person *content.Person) {
	if s.views == nil {
		return
	}

	delta, err := s.views.Increment(ctx, person.Slug)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "view_count_increment_failed",
			slog.String("slug", person.Slug),
			slog.String("error", err.Error()),
		)
		return
	}
	person.ViewCount += delta
}

// mergeViewDeltas folds accumulated view deltas into a result set.
func (s *Service) mergeViewDeltas(ctx context.Context, people []content.Person) {
	if s.views == nil || len(people) == 0 {
		return
	}

	slugs := make([]string, len(people))
	for i := range people {
		slugs[i] = people[i].Slug
	}

	deltas, err := s.views.Snapshot(ctx, slugs)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "view_count_snapshot_failed",
			slog.String("error", err.Error()),
		)
		return
	}

	for i := range people {
		people[i].ViewCount += deltas[people[i].Slug]
	}
}
