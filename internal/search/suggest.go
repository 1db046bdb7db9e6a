// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package search

import (
	"strings"
	"unicode/utf8"

	"github.com/bayaniph/bayani/internal/content"
)

const (
	// SuggestMinQueryLength is the minimum query length that triggers
	// autocomplete. Shorter input yields an empty list.
	SuggestMinQueryLength = 2

	// SuggestMaxResults caps the suggestion list.
	SuggestMaxResults = 8
)

// SuggestionType discriminates what a suggestion refers to.
type SuggestionType string

const (
	SuggestionPerson   SuggestionType = "person"
	SuggestionCategory SuggestionType = "category"
)

// Suggestion is one autocomplete entry.
type Suggestion struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category,omitempty"`
	Type     SuggestionType `json:"type"`
}

// Suggest produces autocomplete entries for the given query.
//
// # Matching
//
// Case-insensitive substring match of the query against a person's name or
// category name, and against a category's name. People come before
// categories; within each group, source order is preserved so identical
// inputs always produce identical output.
func Suggest(people []content.Person, categories []content.Category, query string) []Suggestion {
	term := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(term) < SuggestMinQueryLength {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, SuggestMaxResults)

	for i := range people {
		if len(suggestions) == SuggestMaxResults {
			return suggestions
		}

		person := &people[i]
		categoryName := person.CategoryName()

		if strings.Contains(strings.ToLower(person.Name), term) ||
			strings.Contains(strings.ToLower(categoryName), term) {
			suggestions = append(suggestions, Suggestion{
				ID:       person.ID,
				Name:     person.Name,
				Category: categoryName,
				Type:     SuggestionPerson,
			})
		}
	}

	for i := range categories {
		if len(suggestions) == SuggestMaxResults {
			return suggestions
		}

		category := &categories[i]
		if strings.Contains(strings.ToLower(category.Name), term) {
			suggestions = append(suggestions, Suggestion{
				ID:   category.ID,
				Name: category.Name,
				Type: SuggestionCategory,
			})
		}
	}

	return suggestions
}
