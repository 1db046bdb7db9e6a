// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package search

import (
	"net/url"
	"sync"
	"time"
)

// SettleFunc receives the settled filters after the debounce window closes,
// tagged with the sequence number of the mutation that produced them.
type SettleFunc func(seq uint64, filters Filters)

// SyncFunc receives the canonical filter state for URL persistence on every
// settled change.
type SyncFunc func(filters Filters)

// State owns the three search facets and debounces their propagation.
//
// # Debouncing
//
// Every mutation resets a single timer; only when input has been quiet for
// the full delay do the observers fire, carrying the latest values. Rapid
// successive mutations therefore collapse into one propagation.
//
// # Staleness
//
// Each mutation advances a sequence number, and the settle callback receives
// the sequence current at fire time. Results computed for an old sequence
// can be recognized and discarded via [State.IsCurrent] — last-write-wins by
// mutation order, not by arrival time of asynchronous results.
//
// # Concurrency
//
// All methods are safe for concurrent use. Callbacks run on the timer
// goroutine without holding the internal lock, so they may call back into
// the State.
type State struct {
	mu       sync.Mutex
	filters  Filters
	seq      uint64
	delay    time.Duration
	timer    *time.Timer
	stopped  bool
	onSettle SettleFunc
	onSync   SyncFunc
}

// NewState creates a coordinator with default filters.
// Either callback may be nil.
func NewState(delay time.Duration, onSettle SettleFunc, onSync SyncFunc) *State {
	return &State{
		filters:  DefaultFilters(),
		delay:    delay,
		onSettle: onSettle,
		onSync:   onSync,
	}
}

// Hydrate loads filters from URL parameters without triggering propagation.
// Meant to be called once, before the first mutation.
func (s *State) Hydrate(values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = FromValues(values)
}

// Snapshot returns the current filters.
func (s *State) Snapshot() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Seq returns the current mutation sequence number.
func (s *State) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// IsCurrent reports whether results computed for the given sequence are
// still the latest. Stale results must be discarded by the caller.
func (s *State) IsCurrent(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == seq
}

// # Mutations

// SetQuery updates the free-text facet.
func (s *State) SetQuery(query string) {
	s.mutate(func(f *Filters) { f.Query = query })
}

// SetCategory updates the category facet.
func (s *State) SetCategory(category string) {
	s.mutate(func(f *Filters) {
		if category == "" {
			category = DefaultCategory
		}
		f.Category = category
	})
}

// SetSortBy updates the ordering facet. Unknown values are defaulted, never
// stored raw.
func (s *State) SetSortBy(raw string) {
	s.mutate(func(f *Filters) { f.SortBy = ParseSort(raw) })
}

// Clear resets all three facets to their defaults, which also empties the
// persisted URL parameters on the next sync.
func (s *State) Clear() {
	s.mutate(func(f *Filters) { *f = DefaultFilters() })
}

// ApplySuggestion folds an accepted autocomplete entry into the facets.
//
// A person suggestion pins the free-text query to that person's name; a
// category suggestion selects the category and clears the query.
func (s *State) ApplySuggestion(suggestion Suggestion) {
	s.mutate(func(f *Filters) {
		switch suggestion.Type {
		case SuggestionCategory:
			f.Category = suggestion.Name
			f.Query = ""
		default:
			f.Query = suggestion.Name
		}
	})
}

// Stop cancels any pending propagation. The State must not be mutated after
// Stop returns.
func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// mutate applies one facet change and (re)arms the debounce timer.
func (s *State) mutate(apply func(*Filters)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	apply(&s.filters)
	s.seq++

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.settle)
}

// settle fires after the debounce window closes with no further mutations.
func (s *State) settle() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	filters := s.filters
	seq := s.seq
	s.timer = nil
	s.mu.Unlock()

	// Callbacks run outside the lock: they may read State or issue searches.
	if s.onSync != nil {
		s.onSync(filters)
	}
	if s.onSettle != nil {
		s.onSettle(seq, filters)
	}
}
