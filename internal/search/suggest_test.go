// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/search"
)

func testCategories() []content.Category {
	return []content.Category{
		{ID: "cat-hist", Name: "Historical Figures", Slug: "historical-figures"},
		{ID: "cat-arts", Name: "Arts & Entertainment", Slug: "arts-entertainment"},
	}
}

/*
TestSuggest_Threshold: one character is below the trigger length and yields
an empty list; two characters trigger matching.
*/
func TestSuggest_Threshold(t *testing.T) {
	people := testPeople()
	categories := testCategories()

	assert.Empty(t, search.Suggest(people, categories, "a"))
	assert.Empty(t, search.Suggest(people, categories, ""))
	assert.Empty(t, search.Suggest(people, categories, "  j "), "whitespace does not count toward the threshold")

	suggestions := search.Suggest(people, categories, "jo")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "José Rizal", suggestions[0].Name)
}

/*
TestSuggest_MatchingAndOrder: people match on name or category name and come
before category suggestions; source order is preserved within each group.
*/
func TestSuggest_MatchingAndOrder(t *testing.T) {
	people := testPeople()
	categories := testCategories()

	suggestions := search.Suggest(people, categories, "arts")

	// Salonga matches via her category name, then the category itself.
	require.Len(t, suggestions, 2)
	assert.Equal(t, search.SuggestionPerson, suggestions[0].Type)
	assert.Equal(t, "Lea Salonga", suggestions[0].Name)
	assert.Equal(t, "Arts & Entertainment", suggestions[0].Category)
	assert.Equal(t, search.SuggestionCategory, suggestions[1].Type)
	assert.Equal(t, "Arts & Entertainment", suggestions[1].Name)
}

/*
TestSuggest_Deterministic: identical inputs produce identical output.
*/
func TestSuggest_Deterministic(t *testing.T) {
	people := testPeople()
	categories := testCategories()

	first := search.Suggest(people, categories, "hist")
	second := search.Suggest(people, categories, "hist")
	assert.Equal(t, first, second)
}

/*
TestSuggest_Cap: the suggestion list never exceeds the maximum.
*/
func TestSuggest_Cap(t *testing.T) {
	var people []content.Person
	for i := 0; i < 20; i++ {
		people = append(people, content.Person{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("Juan dela Cruz %d", i),
		})
	}

	suggestions := search.Suggest(people, nil, "juan")
	assert.Len(t, suggestions, search.SuggestMaxResults)
}
