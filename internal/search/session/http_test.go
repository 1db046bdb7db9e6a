// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/search"
	"github.com/bayaniph/bayani/pkg/pointer"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	NewHandler(newTestStore()).RegisterRoutes(router)
	return router
}

type viewEnvelope struct {
	Data View `json:"data"`
}

func decodeView(t *testing.T, body *bytes.Buffer) View {
	t.Helper()
	var envelope viewEnvelope
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestHandler_CreateAndGet: POST hydrates from the request's query string and
GET returns the same session.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/?q=rizal&sort=popular", nil))
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := decodeView(t, recorder.Body)
	assert.Equal(t, "rizal", created.Filters.Query)
	assert.Equal(t, search.SortPopular, created.Filters.SortBy)
	require.Equal(t, 1, created.Results.Total)
	assert.Equal(t, "jose-rizal", created.Results.Items[0].Slug)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, created.ID, decodeView(t, recorder.Body).ID)
}

/*
TestHandler_Update: a PATCH reflects the new facets immediately and the
results settle into a later GET.
*/
func TestHandler_Update(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeView(t, recorder.Body)

	payload, err := json.Marshal(updatePayload{
		Query: pointer.To("salonga"),
		Sort:  pointer.To(string(search.SortNameDesc)),
	})
	require.NoError(t, err)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/"+created.ID, bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, recorder.Code)

	updated := decodeView(t, recorder.Body)
	assert.Equal(t, "salonga", updated.Filters.Query)
	assert.Equal(t, search.SortNameDesc, updated.Filters.SortBy)

	require.Eventually(t, func() bool {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))
		view := decodeView(t, recorder.Body)
		return view.Results.Total == 1 && view.Results.Items[0].Slug == "lea-salonga"
	}, 2*time.Second, 20*time.Millisecond, "results should settle after the debounce window")
}

/*
TestHandler_Delete removes the session; a later GET is a 404.
*/
func TestHandler_Delete(t *testing.T) {
	router := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))
	created := decodeView(t, recorder.Body)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/"+created.ID, nil))
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
