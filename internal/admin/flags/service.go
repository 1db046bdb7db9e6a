// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package flags

import (
	"context"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/validate"
	"github.com/bayaniph/bayani/pkg/pagination"
	"github.com/bayaniph/bayani/pkg/uuidv7"
)

const maxDetailsLength = 1000

// ProfileChecker confirms a flagged slug actually exists in the catalogue.
type ProfileChecker interface {
	GetPersonBySlug(ctx context.Context, slug string) *content.Person
}

// Service implements the flag moderation use-cases.
type Service struct {
	store    Store
	profiles ProfileChecker
}

// NewService wires the flag service.
func NewService(store Store, profiles ProfileChecker) *Service {
	return &Service{store: store, profiles: profiles}
}

// CreateInput holds one member-submitted flag.
type CreateInput struct {
	PersonSlug string
	Reason     string
	Details    string
}

// Create files a flag against a profile. The slug must resolve to a real
// catalogue entry.
func (service *Service) Create(ctx context.Context, reporterID string, input CreateInput) (*Flag, error) {
	v := &validate.Validator{}
	v.Required(FieldPersonSlug, input.PersonSlug).
		Slug(FieldPersonSlug, input.PersonSlug).
		Required(FieldReason, input.Reason).
		OneOf(FieldReason, input.Reason, ReasonInaccurate, ReasonInappropriate, ReasonSpam, ReasonOther).
		MaxLen(FieldDetails, input.Details, maxDetailsLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if person := service.profiles.GetPersonBySlug(ctx, input.PersonSlug); person == nil {
		return nil, apperr.NotFound("Person")
	}

	flag := &Flag{
		ID:         uuidv7.New(),
		PersonSlug: input.PersonSlug,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     StatusOpen,
		ReporterID: reporterID,
	}

	if err := service.store.Create(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// List returns the moderation queue, newest-first. An empty status set
// lists every flag.
func (service *Service) List(ctx context.Context, statuses []FlagStatus, page pagination.Params) ([]Flag, pagination.Meta, error) {
	for _, status := range statuses {
		if status != StatusOpen && !status.IsTerminal() {
			return nil, pagination.Meta{}, validate.RequiredError(FieldStatus, "Unknown flag status")
		}
	}

	items, total, err := service.store.List(ctx, statuses, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Resolve closes an open flag with a terminal status and records the acting
// moderator. Re-closing an already closed flag is a conflict.
func (service *Service) Resolve(ctx context.Context, flagID, moderatorID string, status FlagStatus) (*Flag, error) {
	if !status.IsTerminal() {
		return nil, validate.RequiredError(FieldStatus, "Status must be resolved or dismissed")
	}

	if _, err := service.store.FindByID(ctx, flagID); err != nil {
		return nil, err
	}

	if err := service.store.UpdateStatus(ctx, flagID, status, moderatorID); err != nil {
		return nil, err
	}

	return service.store.FindByID(ctx, flagID)
}
