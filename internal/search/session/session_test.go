// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package session

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/search"
)

// staticSearcher serves a fixed catalogue.
type staticSearcher struct {
	people []content.Person
}

func (s *staticSearcher) GetAllPeople(ctx context.Context) content.Collection[content.Person] {
	return content.Collection[content.Person]{Total: len(s.people), Items: s.people}
}

func newTestStore() *Store {
	historical := &content.Category{ID: "c1", Name: "Historical Figures", Slug: "historical-figures"}
	arts := &content.Category{ID: "c2", Name: "Arts & Entertainment", Slug: "arts-entertainment"}

	return NewStore(&staticSearcher{people: []content.Person{
		{ID: "p1", Slug: "jose-rizal", Name: "José Rizal", Category: historical, ViewCount: 1523},
		{ID: "p2", Slug: "lea-salonga", Name: "Lea Salonga", Category: arts, ViewCount: 987},
	}}, nil)
}

/*
TestStore_Create_InitialResults: a fresh session carries results computed
from its hydrated facets before any mutation.
*/
func TestStore_Create_InitialResults(t *testing.T) {
	store := newTestStore()

	values, err := url.ParseQuery("sort=popular")
	require.NoError(t, err)

	session := store.Create(context.Background(), values)
	view := session.view()

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, search.SortPopular, view.Filters.SortBy)
	assert.True(t, view.HasActiveFilters)
	assert.Equal(t, "sort=popular", view.CanonicalQuery)

	require.Equal(t, 2, view.Results.Total)
	assert.Equal(t, "José Rizal", view.Results.Items[0].Name)
	assert.Equal(t, "Lea Salonga", view.Results.Items[1].Name)
}

/*
TestStore_MutationSettlesIntoResults: after the debounce window, a facet
mutation is reflected in the stored results.
*/
func TestStore_MutationSettlesIntoResults(t *testing.T) {
	store := newTestStore()
	session := store.Create(context.Background(), nil)

	session.state.SetQuery("salonga")

	require.Eventually(t, func() bool {
		v := session.view()
		return v.Results.Total == 1 && v.Results.Items[0].Slug == "lea-salonga"
	}, 2*time.Second, 20*time.Millisecond, "settled search should narrow the results")
}

/*
TestSession_StaleResultsDiscarded: a projection computed for a superseded
sequence must not overwrite newer state.
*/
func TestSession_StaleResultsDiscarded(t *testing.T) {
	store := newTestStore()
	session := store.Create(context.Background(), nil)

	session.state.SetQuery("first")
	staleSeq := session.state.Seq()
	session.state.SetQuery("second")

	stored := session.storeResults(staleSeq, search.Projection{Items: []search.Result{}, Total: 99})
	assert.False(t, stored)
	assert.NotEqual(t, 99, session.view().Results.Total)
}

/*
TestStore_GetAndDelete covers lookup, removal, and the not-found error.
*/
func TestStore_GetAndDelete(t *testing.T) {
	store := newTestStore()
	session := store.Create(context.Background(), nil)

	found, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, found)

	store.Delete(session.ID)

	_, err = store.Get(session.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// Deleting twice is harmless.
	store.Delete(session.ID)
}

/*
TestStore_EvictIdle: sessions idle past the TTL are removed.
*/
func TestStore_EvictIdle(t *testing.T) {
	store := newTestStore()
	session := store.Create(context.Background(), nil)

	// Age the session artificially.
	session.mu.Lock()
	session.lastAccess = time.Now().Add(-25 * time.Hour)
	session.mu.Unlock()

	store.evictIdle()

	_, err := store.Get(session.ID)
	assert.Error(t, err)
}
