// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package flags

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/platform/middleware"
	requestutil "github.com/bayaniph/bayani/internal/platform/request"
	"github.com/bayaniph/bayani/internal/platform/respond"
	"github.com/bayaniph/bayani/internal/platform/sec"
	"github.com/bayaniph/bayani/pkg/pagination"
	"github.com/bayaniph/bayani/pkg/query"
)

// Handler is the HTTP delivery layer for flag moderation.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the flags sub-router. Filing requires a login; reviewing
// requires at least the moderator role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleModerator))
		r.Get("/", handler.list)
		r.Patch("/{id}", handler.resolve)
	})

	return router
}

type createFlagRequest struct {
	PersonSlug string `json:"person_slug"`
	Reason     string `json:"reason"`
	Details    string `json:"details"`
}

type resolveFlagRequest struct {
	Status FlagStatus `json:"status"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	reporterID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createFlagRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	flag, err := handler.service.Create(request.Context(), reporterID, CreateInput{
		PersonSlug: input.PersonSlug,
		Reason:     input.Reason,
		Details:    input.Details,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, flag)
}

// list serves the queue. The status parameter accepts a comma-separated
// set, e.g. ?status=resolved,dismissed for the closed backlog.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	statuses := []FlagStatus{}
	for _, raw := range query.StringSlice(request.URL.Query().Get("status")) {
		statuses = append(statuses, FlagStatus(raw))
	}
	page := pagination.FromRequest(request)

	items, meta, err := handler.service.List(request.Context(), statuses, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, meta)
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	moderatorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveFlagRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	flag, err := handler.service.Resolve(request.Context(), requestutil.ID(request), moderatorID, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, flag)
}
