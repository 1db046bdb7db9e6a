// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Package timeline serves per-profile milestone listings.
package timeline

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/respond"
	"github.com/bayaniph/bayani/internal/platform/validate"
)

// Service resolves milestone listings through the catalogue resolver.
type Service struct {
	resolver *content.Resolver
}

func NewService(resolver *content.Resolver) *Service {
	return &Service{resolver: resolver}
}

// ForPerson returns one profile's milestones, oldest first. A person with
// no recorded milestones yields an empty list.
func (s *Service) ForPerson(ctx context.Context, personSlug string) ([]content.TimelineEvent, error) {
	v := &validate.Validator{}
	if err := v.Required("slug", personSlug).Slug("slug", personSlug).Err(); err != nil {
		return nil, err
	}

	col := s.resolver.GetTimelineEvents(ctx, personSlug)
	if col.Items == nil {
		col.Items = []content.TimelineEvent{}
	}
	return col.Items, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the timeline endpoints. Expected to be nested under
// the people resource so the slug parameter is in scope.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listForPerson)
}

func (handler *Handler) listForPerson(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	events, err := handler.service.ForPerson(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}
