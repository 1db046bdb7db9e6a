// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package search implements the catalogue search pipeline: filter state with
debounced propagation, URL round-tripping, autocomplete suggestions, and the
filter/sort projection over resolved catalogue data.

The pipeline is deliberately split into small pure pieces — Filters,
Project, Suggest — with the stateful debounce coordinator (State) on top.
*/
package search

import "net/url"

// SortOrder enumerates the supported result orderings.
type SortOrder string

const (
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
	SortRecent   SortOrder = "recent"
	SortPopular  SortOrder = "popular"
)

const (
	// DefaultCategory is the sentinel meaning "no category filter".
	DefaultCategory = "All"

	// DefaultSort is the ordering applied when none is requested.
	DefaultSort = SortNameAsc
)

// URL parameter names for filter persistence.
const (
	paramQuery    = "q"
	paramCategory = "category"
	paramSort     = "sort"
)

// ParseSort validates a raw sort value, defaulting unknown input.
//
// Unknown values are defaulted rather than rejected so a hand-edited or
// stale URL can never poison the filter state.
func ParseSort(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortNameAsc, SortNameDesc, SortRecent, SortPopular:
		return SortOrder(raw)
	default:
		return DefaultSort
	}
}

// Filters is the value object holding the three search facets.
type Filters struct {
	Query    string    `json:"query"`
	Category string    `json:"category"`
	SortBy   SortOrder `json:"sort_by"`
}

// DefaultFilters returns the unfiltered state.
func DefaultFilters() Filters {
	return Filters{Query: "", Category: DefaultCategory, SortBy: DefaultSort}
}

// HasActiveFilters reports whether any facet differs from its default.
func (f Filters) HasActiveFilters() bool {
	return f.Query != "" || f.Category != DefaultCategory || f.SortBy != DefaultSort
}

// # URL Persistence

// FromValues hydrates filters from URL query parameters, applying defaults
// for absent or invalid values.
func FromValues(values url.Values) Filters {
	f := DefaultFilters()

	if q := values.Get(paramQuery); q != "" {
		f.Query = q
	}
	if c := values.Get(paramCategory); c != "" {
		f.Category = c
	}
	if s := values.Get(paramSort); s != "" {
		f.SortBy = ParseSort(s)
	}

	return f
}

// Values serializes the filters to URL query parameters.
//
// # Clean URLs
//
// Facets at their default value are omitted entirely, so an unfiltered
// search round-trips to an empty query string.
func (f Filters) Values() url.Values {
	values := url.Values{}

	if f.Query != "" {
		values.Set(paramQuery, f.Query)
	}
	if f.Category != "" && f.Category != DefaultCategory {
		values.Set(paramCategory, f.Category)
	}
	if f.SortBy != "" && f.SortBy != DefaultSort {
		values.Set(paramSort, string(f.SortBy))
	}

	return values
}

// Encode returns the canonical query-string form of the filters.
func (f Filters) Encode() string {
	return f.Values().Encode()
}
