// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Package contentful implements a read-only client for the Contentful
// Content Delivery API.
//
// # Scope
//
// Only the entries endpoint is used:
//
//	GET https://cdn.contentful.com/spaces/{space}/environments/{env}/entries
//
// The client speaks raw CDA JSON and maps it onto the domain model in
// [content]. Write access (the Management API) is deliberately out of scope;
// editorial changes happen in the CMS web app.
package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/content/remoteconfig"
	"github.com/bayaniph/bayani/internal/platform/constants"
)

// DefaultBaseURL is the production Content Delivery API host.
const DefaultBaseURL = "https://cdn.contentful.com"

const (
	contentTypePerson   = "person"
	contentTypeCategory = "category"
	contentTypeTimeline = "timelineEvent"
)

// Client queries one Contentful space.
type Client struct {
	baseURL    string
	cfg        *remoteconfig.Config
	httpClient *http.Client
}

// NewClient creates a client for the given space credentials.
// A nil httpClient falls back to a client with the standard source timeout.
func NewClient(cfg *remoteconfig.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.ContentSourceTimeout}
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// NewClientWithBaseURL is like [NewClient] but targets a custom API host.
// Used by tests to point the client at a local server.
func NewClientWithBaseURL(cfg *remoteconfig.Config, httpClient *http.Client, baseURL string) *Client {
	c := NewClient(cfg, httpClient)
	c.baseURL = baseURL
	return c
}

// # Query Operations

// AllPeople returns every person entry, newest first.
func (c *Client) AllPeople(ctx context.Context) (content.Collection[content.Person], error) {
	params := url.Values{}
	params.Set("content_type", contentTypePerson)
	params.Set("include", "2")
	params.Set("order", "-sys.createdAt")
	params.Set("limit", "100")

	return c.queryPeople(ctx, params)
}

// PersonBySlug returns the person with the given slug, or nil when the slug
// is unknown. A nil result with a nil error is a definitive answer from the
// remote source, not a failure.
func (c *Client) PersonBySlug(ctx context.Context, slug string) (*content.Person, error) {
	params := url.Values{}
	params.Set("content_type", contentTypePerson)
	params.Set("fields.slug", slug)
	params.Set("include", "2")
	params.Set("limit", "1")

	col, err := c.queryPeople(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(col.Items) == 0 {
		return nil, nil
	}
	return &col.Items[0], nil
}

// PeopleByCategory returns all people linked to the category with the given
// slug, newest first.
//
// # Two-phase lookup
//
// The CDA cannot filter on a linked entry's fields directly, so the category
// is resolved to its entry ID first and people are then filtered on the link.
func (c *Client) PeopleByCategory(ctx context.Context, categorySlug string) (content.Collection[content.Person], error) {
	catParams := url.Values{}
	catParams.Set("content_type", contentTypeCategory)
	catParams.Set("fields.slug", categorySlug)
	catParams.Set("limit", "1")

	catCol, err := c.getEntries(ctx, catParams)
	if err != nil {
		return content.Collection[content.Person]{}, err
	}
	if len(catCol.Items) == 0 {
		return content.Collection[content.Person]{}, fmt.Errorf("contentful: category %q not found", categorySlug)
	}

	params := url.Values{}
	params.Set("content_type", contentTypePerson)
	params.Set("fields.category.sys.id", catCol.Items[0].Sys.ID)
	params.Set("include", "2")
	params.Set("order", "-sys.createdAt")

	return c.queryPeople(ctx, params)
}

// SearchPeople performs a full-text search across person entries.
func (c *Client) SearchPeople(ctx context.Context, query string) (content.Collection[content.Person], error) {
	params := url.Values{}
	params.Set("content_type", contentTypePerson)
	params.Set("query", query)
	params.Set("include", "2")
	params.Set("limit", "50")

	return c.queryPeople(ctx, params)
}

// FeaturedPeople returns up to limit featured people, newest first.
func (c *Client) FeaturedPeople(ctx context.Context, limit int) (content.Collection[content.Person], error) {
	params := url.Values{}
	params.Set("content_type", contentTypePerson)
	params.Set("fields.featured", "true")
	params.Set("include", "2")
	params.Set("order", "-sys.createdAt")
	params.Set("limit", strconv.Itoa(limit))

	return c.queryPeople(ctx, params)
}

// AllCategories returns every category entry, ordered by name.
func (c *Client) AllCategories(ctx context.Context) (content.Collection[content.Category], error) {
	params := url.Values{}
	params.Set("content_type", contentTypeCategory)
	params.Set("order", "fields.name")

	col, err := c.getEntries(ctx, params)
	if err != nil {
		return content.Collection[content.Category]{}, err
	}

	items := make([]content.Category, 0, len(col.Items))
	for i := range col.Items {
		if cat := toCategory(&col.Items[i]); cat != nil {
			items = append(items, *cat)
		}
	}

	return content.Collection[content.Category]{Total: col.Total, Items: items}, nil
}

// TimelineEvents returns the milestones for one person, oldest first.
func (c *Client) TimelineEvents(ctx context.Context, personSlug string) (content.Collection[content.TimelineEvent], error) {
	person, err := c.PersonBySlug(ctx, personSlug)
	if err != nil {
		return content.Collection[content.TimelineEvent]{}, err
	}
	if person == nil {
		return content.Collection[content.TimelineEvent]{}, nil
	}

	params := url.Values{}
	params.Set("content_type", contentTypeTimeline)
	params.Set("fields.person.sys.id", person.ID)
	params.Set("include", "2")
	params.Set("order", "fields.date")

	col, err := c.getEntries(ctx, params)
	if err != nil {
		return content.Collection[content.TimelineEvent]{}, err
	}

	idx := newIncludeIndex(col)
	items := make([]content.TimelineEvent, 0, len(col.Items))
	for i := range col.Items {
		event, err := toTimelineEvent(&col.Items[i], idx)
		if err != nil {
			continue
		}
		items = append(items, event)
	}

	return content.Collection[content.TimelineEvent]{Total: col.Total, Items: items}, nil
}

// # Transport

// queryPeople runs an entries query and maps the result to people.
func (c *Client) queryPeople(ctx context.Context, params url.Values) (content.Collection[content.Person], error) {
	col, err := c.getEntries(ctx, params)
	if err != nil {
		return content.Collection[content.Person]{}, err
	}

	idx := newIncludeIndex(col)
	items := make([]content.Person, 0, len(col.Items))
	for i := range col.Items {
		person, err := toPerson(&col.Items[i], idx)
		if err != nil {
			return content.Collection[content.Person]{}, fmt.Errorf("contentful: malformed person entry %s: %w", col.Items[i].Sys.ID, err)
		}
		items = append(items, person)
	}

	return content.Collection[content.Person]{Total: col.Total, Items: items}, nil
}

// getEntries performs one GET against the entries endpoint.
func (c *Client) getEntries(ctx context.Context, params url.Values) (*collection, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL,
		url.PathEscape(c.cfg.SpaceID),
		url.PathEscape(c.cfg.Environment),
		params.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("contentful: invalid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentful: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("contentful: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contentful: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var col collection
	if err := json.Unmarshal(body, &col); err != nil {
		return nil, fmt.Errorf("contentful: malformed response: %w", err)
	}

	return &col, nil
}
