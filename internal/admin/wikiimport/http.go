// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package wikiimport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/platform/middleware"
	requestutil "github.com/bayaniph/bayani/internal/platform/request"
	"github.com/bayaniph/bayani/internal/platform/respond"
	"github.com/bayaniph/bayani/internal/platform/sec"
)

// Handler exposes the importer over HTTP. Admin only.
type Handler struct {
	importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

// Routes returns the import sub-router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.importDraft)

	return router
}

type importRequest struct {
	Title string `json:"title"`
}

func (handler *Handler) importDraft(writer http.ResponseWriter, request *http.Request) {
	var input importRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.importer.Fetch(request.Context(), input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}
