// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package content defines the catalogue domain model and the resolver that
decides where catalogue data comes from.

The catalogue is authored in a remote headless CMS. Because the CMS is an
external dependency that can be misconfigured or unreachable, every read
operation is backed by a built-in fallback dataset so browsing never breaks.

Sub-packages:

  - remoteconfig: lazy, cached retrieval of CMS credentials.
  - contentful: the Content Delivery API client.

The resolver in this package ties them together.
*/
package content

import "time"

// # Domain Model

// Category groups profiles by field of accomplishment.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Count       int    `json:"count"`
}

// Person is a single catalogue profile.
//
// # Category linkage
//
// Category is a pointer because the CMS link may be unresolved (draft entries,
// broken references). Consumers must treat a nil Category as "uncategorized"
// rather than an error.
type Person struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Tagline      string            `json:"tagline,omitempty"`
	Biography    string            `json:"biography,omitempty"`
	Category     *Category         `json:"category,omitempty"`
	Achievements []string          `json:"achievements,omitempty"`
	Featured     bool              `json:"featured"`
	ViewCount    int64             `json:"view_count"`
	BirthDate    string            `json:"birth_date,omitempty"`
	DeathDate    string            `json:"death_date,omitempty"`
	Nationality  string            `json:"nationality,omitempty"`
	Occupation   []string          `json:"occupation,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	ImageURL     string            `json:"image_url,omitempty"`
	SocialLinks  map[string]string `json:"social_links,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CategoryName returns the linked category's name, or "" when unlinked.
func (p *Person) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// TimelineEvent is a dated milestone in a person's life.
type TimelineEvent struct {
	ID          string `json:"id"`
	PersonSlug  string `json:"person_slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
}

// Collection wraps a list result with its total count.
//
// Totals can exceed len(Items) when the upstream query was limited.
type Collection[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}
