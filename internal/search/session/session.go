// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package session exposes search coordinators as server-owned resources.

A session is one browsing context's search state: clients create a session,
patch its facets as the visitor types, and poll (or re-fetch) its results.
The debounce lives server-side in [search.State], so a burst of keystroke
patches still collapses into a single catalogue search.

Sessions are in-memory and expendable: an evicted or lost session is
recreated by the client with the same URL parameters it already holds.
*/
package session

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/constants"
	"github.com/bayaniph/bayani/internal/search"
	"github.com/bayaniph/bayani/pkg/uuidv7"
)

// Searcher is the slice of the catalogue resolver the session store needs.
type Searcher interface {
	GetAllPeople(ctx context.Context) content.Collection[content.Person]
}

// Session is one live search coordinator plus its latest settled results.
type Session struct {
	ID string

	state *search.State

	mu         sync.Mutex
	results    search.Projection
	resultsSeq uint64
	lastAccess time.Time
}

// View is the wire representation of a session.
type View struct {
	ID               string            `json:"id"`
	Filters          search.Filters    `json:"filters"`
	HasActiveFilters bool              `json:"has_active_filters"`
	CanonicalQuery   string            `json:"canonical_query"`
	Results          search.Projection `json:"results"`
}

// view snapshots the session for a response.
func (s *Session) view() View {
	filters := s.state.Snapshot()

	s.mu.Lock()
	results := s.results
	s.lastAccess = time.Now()
	s.mu.Unlock()

	return View{
		ID:               s.ID,
		Filters:          filters,
		HasActiveFilters: filters.HasActiveFilters(),
		CanonicalQuery:   filters.Encode(),
		Results:          results,
	}
}

// storeResults publishes a settled projection unless it has been superseded.
func (s *Session) storeResults(seq uint64, proj search.Projection) bool {
	if !s.state.IsCurrent(seq) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A concurrent settle for a newer mutation may have landed first.
	if seq < s.resultsSeq {
		return false
	}
	s.results = proj
	s.resultsSeq = seq
	return true
}

// idleSince reports the last time the session was read or mutated.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// # Store

// Store owns all live sessions and their eviction.
type Store struct {
	searcher Searcher
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore(searcher Searcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		searcher: searcher,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session hydrated from URL-style parameters and
// computes its initial results synchronously, so the first response already
// carries data.
func (st *Store) Create(ctx context.Context, values url.Values) *Session {
	session := &Session{ID: uuidv7.New()}

	session.state = search.NewState(
		constants.SearchDebounceDelay,
		func(seq uint64, filters search.Filters) {
			st.runSearch(session, seq, filters)
		},
		func(filters search.Filters) {
			st.logger.Debug("search_session_synced",
				slog.String("session_id", session.ID),
				slog.String("canonical_query", filters.Encode()),
			)
		},
	)
	session.state.Hydrate(values)

	// Initial projection happens inline, outside the debounce path.
	people := st.searcher.GetAllPeople(ctx)
	session.mu.Lock()
	session.results = search.Project(people.Items, session.state.Snapshot())
	session.lastAccess = time.Now()
	session.mu.Unlock()

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	return session
}

// Get returns a live session by ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	session, ok := st.sessions[id]
	st.mu.Unlock()

	if !ok {
		return nil, apperr.NotFound("Search session")
	}
	return session, nil
}

// Delete stops and removes a session. Unknown IDs are a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	session, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		session.state.Stop()
	}
}

// StartJanitor evicts idle sessions until ctx is cancelled.
func (st *Store) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(constants.SearchSessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				st.evictIdle()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// evictIdle removes sessions past their TTL.
func (st *Store) evictIdle() {
	cutoff := time.Now().Add(-constants.SearchSessionTTL)

	st.mu.Lock()
	var expired []*Session
	for id, session := range st.sessions {
		if session.idleSince().Before(cutoff) {
			expired = append(expired, session)
			delete(st.sessions, id)
		}
	}
	remaining := len(st.sessions)
	st.mu.Unlock()

	for _, session := range expired {
		session.state.Stop()
	}

	if len(expired) > 0 {
		st.logger.Info("search_sessions_evicted",
			slog.Int("evicted", len(expired)),
			slog.Int("remaining", remaining),
		)
	}
}

// runSearch executes the settled search and publishes its results.
//
// The projection is computed against a fresh catalogue snapshot; if the
// session mutated again while this ran, the stale result is dropped.
func (st *Store) runSearch(session *Session, seq uint64, filters search.Filters) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ContentSourceTimeout)
	defer cancel()

	people := st.searcher.GetAllPeople(ctx)
	proj := search.Project(people.Items, filters)

	if !session.storeResults(seq, proj) {
		st.logger.Debug("search_session_stale_result_discarded",
			slog.String("session_id", session.ID),
			slog.Uint64("seq", seq),
		)
	}
}
