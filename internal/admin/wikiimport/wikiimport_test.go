// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package wikiimport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/platform/apperr"
)

const rizalSummary = `{
	"type": "standard",
	"title": "José Rizal",
	"description": "Filipino nationalist and polymath",
	"extract": "José Rizal was a Filipino nationalist, writer and polymath active at the end of the Spanish colonial period.",
	"thumbnail": {"source": "https://upload.wikimedia.org/thumb/rizal.jpg"},
	"originalimage": {"source": "https://upload.wikimedia.org/rizal.jpg"},
	"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Jos%C3%A9_Rizal"}}
}`

/*
TestImporter_Fetch maps a summary payload onto a profile draft, including the
slug and seeded keywords.
*/
func TestImporter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/page/summary/Jos%C3%A9_Rizal", request.URL.EscapedPath())
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(rizalSummary))
	}))
	defer server.Close()

	importer := NewImporterWithBaseURL(server.URL, server.Client())

	draft, err := importer.Fetch(context.Background(), "José Rizal")
	require.NoError(t, err)

	assert.Equal(t, "jose-rizal", draft.Person.Slug)
	assert.Equal(t, "José Rizal", draft.Person.Name)
	assert.Equal(t, "Filipino nationalist and polymath", draft.Person.Tagline)
	assert.Contains(t, draft.Person.Biography, "Spanish colonial period")
	assert.Equal(t, "https://upload.wikimedia.org/rizal.jpg", draft.Person.ImageURL)
	assert.Equal(t, []string{"filipino", "nationalist", "polymath"}, draft.Person.Keywords)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Jos%C3%A9_Rizal", draft.SourceURL)
}

/*
TestImporter_Fetch_NotFound maps a 404 to the standard not-found error.
*/
func TestImporter_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	importer := NewImporterWithBaseURL(server.URL, server.Client())

	_, err := importer.Fetch(context.Background(), "Nonexistent Article")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestImporter_Fetch_Disambiguation rejects ambiguous titles so an admin never
imports a disambiguation page as a profile.
*/
func TestImporter_Fetch_Disambiguation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"type": "disambiguation", "title": "Mercury"}`))
	}))
	defer server.Close()

	importer := NewImporterWithBaseURL(server.URL, server.Client())

	_, err := importer.Fetch(context.Background(), "Mercury")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
}

/*
TestImporter_Fetch_EmptyTitle rejects blank input before any network call.
*/
func TestImporter_Fetch_EmptyTitle(t *testing.T) {
	importer := NewImporterWithBaseURL("http://127.0.0.1:1", nil)

	_, err := importer.Fetch(context.Background(), "   ")
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
