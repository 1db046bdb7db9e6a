// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package flags

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/pkg/pagination"
)

// # Fakes

type memoryFlagStore struct {
	flags map[string]*Flag
}

func newMemoryFlagStore() *memoryFlagStore {
	return &memoryFlagStore{flags: map[string]*Flag{}}
}

func (store *memoryFlagStore) Create(_ context.Context, flag *Flag) error {
	store.flags[flag.ID] = flag
	return nil
}

func (store *memoryFlagStore) FindByID(_ context.Context, id string) (*Flag, error) {
	if flag, ok := store.flags[id]; ok {
		return flag, nil
	}
	return nil, apperr.NotFound("Flag")
}

func (store *memoryFlagStore) List(_ context.Context, statuses []FlagStatus, limit, offset int) ([]Flag, int, error) {
	wanted := map[FlagStatus]bool{}
	for _, status := range statuses {
		wanted[status] = true
	}

	matching := []Flag{}
	for _, flag := range store.flags {
		if len(wanted) == 0 || wanted[flag.Status] {
			matching = append(matching, *flag)
		}
	}
	// UUIDv7 IDs are time-ordered, so descending ID is newest-first.
	sort.Slice(matching, func(i, j int) bool { return matching[i].ID > matching[j].ID })

	total := len(matching)
	if offset >= total {
		return []Flag{}, total, nil
	}
	end := min(offset+limit, total)
	return matching[offset:end], total, nil
}

func (store *memoryFlagStore) UpdateStatus(_ context.Context, id string, status FlagStatus, resolvedBy string) error {
	flag, ok := store.flags[id]
	if !ok || flag.Status != StatusOpen {
		return apperr.Conflict("Flag is not open")
	}
	flag.Status = status
	flag.ResolvedBy = resolvedBy
	return nil
}

type knownProfiles map[string]bool

func (profiles knownProfiles) GetPersonBySlug(_ context.Context, slug string) *content.Person {
	if profiles[slug] {
		return &content.Person{Slug: slug}
	}
	return nil
}

func newTestService() (*Service, *memoryFlagStore) {
	store := newMemoryFlagStore()
	profiles := knownProfiles{"jose-rizal": true, "lea-salonga": true}
	return NewService(store, profiles), store
}

// # Tests

/*
TestService_Create files a flag against an existing profile and rejects
unknown slugs and bad reasons.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()

	flag, err := service.Create(context.Background(), "reporter-1", CreateInput{
		PersonSlug: "jose-rizal",
		Reason:     ReasonInaccurate,
		Details:    "Birth year is wrong",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, flag.ID)
	assert.Equal(t, StatusOpen, flag.Status)
	assert.Equal(t, "reporter-1", flag.ReporterID)

	_, err = service.Create(context.Background(), "reporter-1", CreateInput{
		PersonSlug: "no-such-person",
		Reason:     ReasonSpam,
	})
	assertErrCode(t, err, "NOT_FOUND")

	_, err = service.Create(context.Background(), "reporter-1", CreateInput{
		PersonSlug: "jose-rizal",
		Reason:     "i-just-dislike-it",
	})
	assertErrCode(t, err, "VALIDATION_ERROR")

	_, err = service.Create(context.Background(), "reporter-1", CreateInput{
		PersonSlug: "Not A Slug",
		Reason:     ReasonSpam,
	})
	assertErrCode(t, err, "VALIDATION_ERROR")
}

/*
TestService_List filters by status and paginates newest-first.
*/
func TestService_List(t *testing.T) {
	service, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), "reporter-1", CreateInput{
			PersonSlug: "jose-rizal", Reason: ReasonSpam,
		})
		require.NoError(t, err)
	}
	last, err := service.Create(context.Background(), "reporter-2", CreateInput{
		PersonSlug: "lea-salonga", Reason: ReasonInappropriate,
	})
	require.NoError(t, err)

	open, meta, err := service.List(context.Background(), []FlagStatus{StatusOpen}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, meta.Total)
	require.Len(t, open, 4)
	assert.Equal(t, last.ID, open[0].ID)

	firstPage, meta, err := service.List(context.Background(), nil, pagination.Params{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, firstPage, 3)
	assert.Equal(t, 2, meta.TotalPages)

	_, err = service.Resolve(context.Background(), last.ID, "moderator-1", StatusDismissed)
	require.NoError(t, err)

	closed, meta, err := service.List(context.Background(), []FlagStatus{StatusResolved, StatusDismissed}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	require.Len(t, closed, 1)
	assert.Equal(t, last.ID, closed[0].ID)

	_, _, err = service.List(context.Background(), []FlagStatus{"archived"}, pagination.Params{Page: 1, Limit: 10})
	assertErrCode(t, err, "VALIDATION_ERROR")
}

/*
TestService_Resolve closes an open flag exactly once.
*/
func TestService_Resolve(t *testing.T) {
	service, _ := newTestService()

	flag, err := service.Create(context.Background(), "reporter-1", CreateInput{
		PersonSlug: "jose-rizal", Reason: ReasonInaccurate,
	})
	require.NoError(t, err)

	resolved, err := service.Resolve(context.Background(), flag.ID, "moderator-1", StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	assert.Equal(t, "moderator-1", resolved.ResolvedBy)

	_, err = service.Resolve(context.Background(), flag.ID, "moderator-2", StatusDismissed)
	assertErrCode(t, err, "CONFLICT")

	_, err = service.Resolve(context.Background(), flag.ID, "moderator-1", StatusOpen)
	assertErrCode(t, err, "VALIDATION_ERROR")

	_, err = service.Resolve(context.Background(), "missing-id", "moderator-1", StatusResolved)
	assertErrCode(t, err, "NOT_FOUND")
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, code, appError.Code)
}
