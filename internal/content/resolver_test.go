// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package content_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/content"
)

// fakeSource lets each operation be scripted as healthy or failing.
type fakeSource struct {
	failing bool
	calls   atomic.Int32
}

var errSourceDown = errors.New("connection refused")

func (f *fakeSource) result(people ...content.Person) (content.Collection[content.Person], error) {
	f.calls.Add(1)
	if f.failing {
		return content.Collection[content.Person]{}, errSourceDown
	}
	return content.Collection[content.Person]{Total: len(people), Items: people}, nil
}

func (f *fakeSource) AllPeople(ctx context.Context) (content.Collection[content.Person], error) {
	return f.result(content.Person{ID: "remote1", Slug: "jose-rizal", Name: "José Rizal"})
}

func (f *fakeSource) PersonBySlug(ctx context.Context, slug string) (*content.Person, error) {
	f.calls.Add(1)
	if f.failing {
		return nil, errSourceDown
	}
	if slug != "jose-rizal" {
		return nil, nil
	}
	return &content.Person{ID: "remote1", Slug: "jose-rizal", Name: "José Rizal"}, nil
}

func (f *fakeSource) PeopleByCategory(ctx context.Context, categorySlug string) (content.Collection[content.Person], error) {
	return f.result()
}

func (f *fakeSource) SearchPeople(ctx context.Context, query string) (content.Collection[content.Person], error) {
	return f.result()
}

func (f *fakeSource) FeaturedPeople(ctx context.Context, limit int) (content.Collection[content.Person], error) {
	return f.result()
}

func (f *fakeSource) AllCategories(ctx context.Context) (content.Collection[content.Category], error) {
	f.calls.Add(1)
	if f.failing {
		return content.Collection[content.Category]{}, errSourceDown
	}
	return content.Collection[content.Category]{}, nil
}

func (f *fakeSource) TimelineEvents(ctx context.Context, personSlug string) (content.Collection[content.TimelineEvent], error) {
	f.calls.Add(1)
	if f.failing {
		return content.Collection[content.TimelineEvent]{}, errSourceDown
	}
	return content.Collection[content.TimelineEvent]{}, nil
}

func factoryFor(src content.RemoteSource, err error) content.SourceFactory {
	return func(ctx context.Context) (content.RemoteSource, error) {
		return src, err
	}
}

/*
TestResolver_RemoteHealthy verifies that a working remote source is used and
the fallback is untouched.
*/
func TestResolver_RemoteHealthy(t *testing.T) {
	src := &fakeSource{}
	resolver := content.NewResolver(factoryFor(src, nil), content.NewFallbackDataset(), nil)

	col := resolver.GetAllPeople(context.Background())

	require.Len(t, col.Items, 1)
	assert.Equal(t, "remote1", col.Items[0].ID)
}

/*
TestResolver_QueryFailureFallsBack verifies that a failing remote query is
answered from the built-in dataset without surfacing an error.
*/
func TestResolver_QueryFailureFallsBack(t *testing.T) {
	src := &fakeSource{failing: true}
	resolver := content.NewResolver(factoryFor(src, nil), content.NewFallbackDataset(), nil)

	col := resolver.GetAllPeople(context.Background())

	assert.Equal(t, 6, col.Total, "the full built-in catalogue should be served")
	assert.Equal(t, "stephen-hawking", col.Items[0].Slug, "built-in results keep newest-first ordering")
}

/*
TestResolver_FactoryFailureFallsBack covers the path where credentials are
unavailable so the source cannot even be constructed.
*/
func TestResolver_FactoryFailureFallsBack(t *testing.T) {
	resolver := content.NewResolver(
		factoryFor(nil, errors.New("credentials endpoint unreachable")),
		content.NewFallbackDataset(),
		nil,
	)

	person := resolver.GetPersonBySlug(context.Background(), "marie-curie")

	require.NotNil(t, person)
	assert.Equal(t, "Marie Curie", person.Name)
}

/*
TestResolver_SourceIsMemoized verifies the factory is consulted once for a
successful construction.
*/
func TestResolver_SourceIsMemoized(t *testing.T) {
	src := &fakeSource{}
	var factoryCalls atomic.Int32

	resolver := content.NewResolver(func(ctx context.Context) (content.RemoteSource, error) {
		factoryCalls.Add(1)
		return src, nil
	}, content.NewFallbackDataset(), nil)

	resolver.GetAllPeople(context.Background())
	resolver.GetAllCategories(context.Background())
	resolver.SearchPeople(context.Background(), "rizal")

	assert.Equal(t, int32(1), factoryCalls.Load())
}

/*
TestResolver_NotFoundIsNotAFailure: a definitive "no such slug" from the
remote source must be returned as nil, not turned into a fallback lookup.
*/
func TestResolver_NotFoundIsNotAFailure(t *testing.T) {
	src := &fakeSource{}
	resolver := content.NewResolver(factoryFor(src, nil), content.NewFallbackDataset(), nil)

	// marie-curie exists in the fallback set but not in the remote source;
	// the remote answer wins because the source is healthy.
	person := resolver.GetPersonBySlug(context.Background(), "marie-curie")
	assert.Nil(t, person)
}

/*
TestFallbackDataset_Search exercises the built-in search matching rules.
*/
func TestFallbackDataset_Search(t *testing.T) {
	dataset := content.NewFallbackDataset()

	tests := []struct {
		name      string
		query     string
		wantSlugs []string
	}{
		{"name_match", "einstein", []string{"albert-einstein"}},
		{"tagline_match", "radioactivity", []string{"marie-curie"}},
		{"keyword_match", "apartheid", []string{"nelson-mandela"}},
		{"case_insensitive", "NOBEL", []string{"albert-einstein", "marie-curie"}},
		{"no_match", "xyzzy", nil},
		{"empty_query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := dataset.SearchPeople(tt.query)

			var slugs []string
			for _, p := range col.Items {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
		})
	}
}

/*
TestFallbackDataset_FeaturedPeople checks the featured filter and limit.
*/
func TestFallbackDataset_FeaturedPeople(t *testing.T) {
	dataset := content.NewFallbackDataset()

	all := dataset.FeaturedPeople(0)
	assert.Equal(t, 4, all.Total)
	assert.Len(t, all.Items, 4)

	limited := dataset.FeaturedPeople(2)
	assert.Equal(t, 4, limited.Total, "total reflects all featured people")
	assert.Len(t, limited.Items, 2)
}

/*
TestFallbackDataset_PeopleByCategory checks category filtering including the
unknown-slug edge.
*/
func TestFallbackDataset_PeopleByCategory(t *testing.T) {
	dataset := content.NewFallbackDataset()

	scientists := dataset.PeopleByCategory("scientists")
	assert.Equal(t, 3, scientists.Total)

	unknown := dataset.PeopleByCategory("astronauts")
	assert.Equal(t, 0, unknown.Total)
	assert.Empty(t, unknown.Items)
}

/*
TestFallbackDataset_TimelineEvents checks per-person milestone lookup.
*/
func TestFallbackDataset_TimelineEvents(t *testing.T) {
	dataset := content.NewFallbackDataset()

	events := dataset.TimelineEvents("nelson-mandela")
	require.Equal(t, 2, events.Total)
	assert.Equal(t, "Released from prison", events.Items[0].Title)

	none := dataset.TimelineEvents("frida-kahlo")
	assert.Equal(t, 0, none.Total)
}
