// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/platform/request"
	"github.com/bayaniph/bayani/internal/platform/respond"
	"github.com/bayaniph/bayani/internal/search"
)

// Handler serves the search session endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a session HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the session endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// create starts a session, hydrating facets from the request's own query
// parameters (q, category, sort) so a shared URL restores its search.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	session := h.store.Create(r.Context(), r.URL.Query())
	respond.Created(w, session.view())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(request.ID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, session.view())
}

// updatePayload carries facet mutations. Pointer fields distinguish "not
// sent" from "set to empty".
type updatePayload struct {
	Query      *string            `json:"query"`
	Category   *string            `json:"category"`
	Sort       *string            `json:"sort"`
	Clear      bool               `json:"clear"`
	Suggestion *search.Suggestion `json:"suggestion"`
}

// update applies facet mutations to a session.
//
// The response reflects the new facet state immediately; results settle
// after the debounce window and are picked up by the next GET.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(request.ID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var payload updatePayload
	if err := request.DecodeJSON(w, r, &payload); err != nil {
		respond.Error(w, r, err)
		return
	}

	if payload.Clear {
		session.state.Clear()
	}
	if payload.Query != nil {
		session.state.SetQuery(*payload.Query)
	}
	if payload.Category != nil {
		session.state.SetCategory(*payload.Category)
	}
	if payload.Sort != nil {
		session.state.SetSortBy(*payload.Sort)
	}
	if payload.Suggestion != nil {
		session.state.ApplySuggestion(*payload.Suggestion)
	}

	respond.OK(w, session.view())
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(request.ID(r))
	respond.NoContent(w)
}
