// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package people

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/platform/respond"
	"github.com/bayaniph/bayani/internal/search"
	"github.com/bayaniph/bayani/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPeopleRoutes mounts the profile endpoints.
func (handler *Handler) RegisterPeopleRoutes(router chi.Router) {
	router.Get("/", handler.listPeople)
	router.Get("/featured", handler.listFeatured)
	router.Get("/{slug}", handler.getPerson)
}

// RegisterSearchRoutes mounts the one-shot search endpoints. Stateful search
// sessions are mounted next to these by the server.
func (handler *Handler) RegisterSearchRoutes(router chi.Router) {
	router.Get("/", handler.searchPeople)
	router.Get("/suggest", handler.suggest)
}

// RegisterCategoryRoutes mounts the category endpoints.
func (handler *Handler) RegisterCategoryRoutes(router chi.Router) {
	router.Get("/", handler.listCategories)
	router.Get("/{slug}/people", handler.listByCategory)
}

// listPeople serves the filtered, sorted, paginated catalogue. Facets use
// the same q/category/sort parameters that search sessions persist.
func (handler *Handler) listPeople(writer http.ResponseWriter, request *http.Request) {
	filters := search.FromValues(request.URL.Query())
	page := pagination.FromRequest(request)

	proj, meta, err := handler.service.List(request.Context(), filters, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, proj.Items, meta)
}

func (handler *Handler) listFeatured(writer http.ResponseWriter, request *http.Request) {
	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))

	people, err := handler.service.Featured(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, people)
}

// searchPeople is the stateless rendition of listPeople: same filters, same
// projection, no session. Clients that do not need debounced mutation use it.
func (handler *Handler) searchPeople(writer http.ResponseWriter, request *http.Request) {
	handler.listPeople(writer, request)
}

func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	suggestions, err := handler.service.Suggest(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, suggestions)
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	person, err := handler.service.GetBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	people, err := handler.service.ByCategory(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, people)
}
