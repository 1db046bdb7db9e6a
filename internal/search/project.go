// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package search

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/pkg/pagination"
)

// Result is the read projection of a profile returned by a search.
type Result struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Tagline      string    `json:"tagline,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Achievements []string  `json:"achievements,omitempty"`
	Featured     bool      `json:"featured"`
	ViewCount    int64     `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Projection is the output of one search: the ordered results plus the total
// match count (which survives pagination).
type Projection struct {
	Items []Result `json:"items"`
	Total int      `json:"total"`
}

// Project filters and sorts the dataset according to the given filters.
//
// # Purity
//
// Project holds no state and never fails: an empty dataset or filters that
// match nothing produce {Items: [], Total: 0}.
//
// # Matching
//
//   - Query: case-insensitive substring over name, tagline, achievements,
//     and keywords.
//   - Category: exact name equality ("Arts" does not match
//     "Arts & Entertainment"), with the "All" sentinel disabling the filter.
//
// # Ordering
//
// Name sorts are locale-aware so accented names collate where a reader
// expects them. All sorts are stable: ties keep their filter-stage order.
func Project(people []content.Person, filters Filters) Projection {
	var matched []Result

	query := strings.ToLower(strings.TrimSpace(filters.Query))
	for i := range people {
		person := &people[i]

		if query != "" && !matchesQuery(person, query) {
			continue
		}
		if filters.Category != "" && filters.Category != DefaultCategory &&
			person.CategoryName() != filters.Category {
			continue
		}

		matched = append(matched, Result{
			ID:           person.ID,
			Slug:         person.Slug,
			Name:         person.Name,
			Category:     person.CategoryName(),
			Tagline:      person.Tagline,
			ImageURL:     person.ImageURL,
			Achievements: person.Achievements,
			Featured:     person.Featured,
			ViewCount:    person.ViewCount,
			CreatedAt:    person.CreatedAt,
		})
	}

	sortResults(matched, filters.SortBy)

	if matched == nil {
		matched = []Result{}
	}
	return Projection{Items: matched, Total: len(matched)}
}

// Page slices a projection to one page without altering Total.
func (p Projection) Page(params pagination.Params) Projection {
	offset := params.Offset()
	if offset >= len(p.Items) {
		return Projection{Items: []Result{}, Total: p.Total}
	}

	end := offset + params.Limit
	if end > len(p.Items) {
		end = len(p.Items)
	}

	return Projection{Items: p.Items[offset:end], Total: p.Total}
}

// matchesQuery checks one person against a lowercased query term.
func matchesQuery(p *content.Person, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Tagline), query) {
		return true
	}
	for _, achievement := range p.Achievements {
		if strings.Contains(strings.ToLower(achievement), query) {
			return true
		}
	}
	for _, keyword := range p.Keywords {
		if strings.Contains(strings.ToLower(keyword), query) {
			return true
		}
	}
	return false
}

// sortResults orders results in place, stably, by the requested key.
func sortResults(results []Result, sortBy SortOrder) {
	switch sortBy {
	case SortNameDesc:
		collator := collate.New(language.English)
		sort.SliceStable(results, func(i, j int) bool {
			return collator.CompareString(results[i].Name, results[j].Name) > 0
		})
	case SortRecent:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ViewCount > results[j].ViewCount
		})
	default: // SortNameAsc, plus anything unvalidated
		collator := collate.New(language.English)
		sort.SliceStable(results, func(i, j int) bool {
			return collator.CompareString(results[i].Name, results[j].Name) < 0
		})
	}
}
