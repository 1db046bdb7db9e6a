// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package contentful

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bayaniph/bayani/internal/content"
)

// # Wire Types
//
// These mirror the raw Content Delivery API JSON. Linked entries arrive as
// {"sys":{"type":"Link",...}} references with their targets shipped in the
// collection's "includes" block, so decoding is a two-phase affair: unmarshal
// the raw shapes, then resolve links against an include index.

type sysInfo struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	LinkType    string    `json:"linkType"`
	CreatedAt   time.Time `json:"createdAt"`
	ContentType struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType"`
}

type entry struct {
	Sys    sysInfo         `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

type asset struct {
	Sys    sysInfo `json:"sys"`
	Fields struct {
		Title string `json:"title"`
		File  struct {
			URL string `json:"url"`
		} `json:"file"`
	} `json:"fields"`
}

type collection struct {
	Total    int     `json:"total"`
	Skip     int     `json:"skip"`
	Limit    int     `json:"limit"`
	Items    []entry `json:"items"`
	Includes struct {
		Entry []entry `json:"Entry"`
		Asset []asset `json:"Asset"`
	} `json:"includes"`
}

type personFields struct {
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Tagline      string            `json:"tagline"`
	Biography    *richTextNode     `json:"biography"`
	Category     json.RawMessage   `json:"category"`
	Achievements []string          `json:"achievements"`
	Featured     bool              `json:"featured"`
	ViewCount    int64             `json:"viewCount"`
	BirthDate    string            `json:"birthDate"`
	DeathDate    string            `json:"deathDate"`
	Nationality  string            `json:"nationality"`
	Occupation   []string          `json:"occupation"`
	Keywords     []string          `json:"keywords"`
	ProfileImage json.RawMessage   `json:"profileImage"`
	SocialLinks  map[string]string `json:"socialLinks"`
}

type categoryFields struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Count       int    `json:"count"`
}

type timelineEventFields struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Location    string          `json:"location"`
	Person      json.RawMessage `json:"person"`
}

// # Link Resolution

// includeIndex resolves entry and asset links against the "includes" block
// plus the collection's own items (an item can link to a sibling item).
type includeIndex struct {
	entries map[string]entry
	assets  map[string]asset
}

func newIncludeIndex(col *collection) *includeIndex {
	idx := &includeIndex{
		entries: make(map[string]entry, len(col.Includes.Entry)+len(col.Items)),
		assets:  make(map[string]asset, len(col.Includes.Asset)),
	}
	for _, e := range col.Includes.Entry {
		idx.entries[e.Sys.ID] = e
	}
	for _, e := range col.Items {
		idx.entries[e.Sys.ID] = e
	}
	for _, a := range col.Includes.Asset {
		idx.assets[a.Sys.ID] = a
	}
	return idx
}

// resolveEntry follows a raw field that is either an inline entry or a
// {"sys":{"type":"Link"}} reference. Returns nil for broken links.
func (idx *includeIndex) resolveEntry(raw json.RawMessage) *entry {
	if len(raw) == 0 {
		return nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil
	}

	if e.Sys.Type == "Link" {
		target, ok := idx.entries[e.Sys.ID]
		if !ok {
			return nil
		}
		return &target
	}

	if len(e.Fields) == 0 {
		return nil
	}
	return &e
}

// resolveAssetURL follows an asset link and returns an absolute image URL.
func (idx *includeIndex) resolveAssetURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var a asset
	if err := json.Unmarshal(raw, &a); err != nil {
		return ""
	}

	if a.Sys.Type == "Link" {
		target, ok := idx.assets[a.Sys.ID]
		if !ok {
			return ""
		}
		a = target
	}

	url := a.Fields.File.URL
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

// # Rich Text

// richTextNode is one node of a Contentful rich-text document.
type richTextNode struct {
	NodeType string         `json:"nodeType"`
	Value    string         `json:"value"`
	Content  []richTextNode `json:"content"`
}

// plainText flattens a rich-text document into plain prose. Top-level blocks
// are joined with spaces, inline runs are concatenated as-is.
func plainText(doc *richTextNode) string {
	if doc == nil || len(doc.Content) == 0 {
		return ""
	}

	parts := make([]string, 0, len(doc.Content))
	for _, block := range doc.Content {
		parts = append(parts, flattenNode(&block))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func flattenNode(node *richTextNode) string {
	if node.NodeType == "text" {
		return node.Value
	}

	var b strings.Builder
	for i := range node.Content {
		b.WriteString(flattenNode(&node.Content[i]))
	}
	return b.String()
}

// # Domain Mapping

// toCategory converts a category entry into the domain model.
func toCategory(e *entry) *content.Category {
	if e == nil {
		return nil
	}

	var fields categoryFields
	if err := json.Unmarshal(e.Fields, &fields); err != nil {
		return nil
	}

	return &content.Category{
		ID:          e.Sys.ID,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		Icon:        fields.Icon,
		Color:       fields.Color,
		Count:       fields.Count,
	}
}

// toPerson converts a person entry into the domain model, resolving the
// category link and profile image against the include index.
func toPerson(e *entry, idx *includeIndex) (content.Person, error) {
	var fields personFields
	if err := json.Unmarshal(e.Fields, &fields); err != nil {
		return content.Person{}, err
	}

	return content.Person{
		ID:           e.Sys.ID,
		Slug:         fields.Slug,
		Name:         fields.Name,
		Tagline:      fields.Tagline,
		Biography:    plainText(fields.Biography),
		Category:     toCategory(idx.resolveEntry(fields.Category)),
		Achievements: fields.Achievements,
		Featured:     fields.Featured,
		ViewCount:    fields.ViewCount,
		BirthDate:    fields.BirthDate,
		DeathDate:    fields.DeathDate,
		Nationality:  fields.Nationality,
		Occupation:   fields.Occupation,
		Keywords:     fields.Keywords,
		ImageURL:     idx.resolveAssetURL(fields.ProfileImage),
		SocialLinks:  fields.SocialLinks,
		CreatedAt:    e.Sys.CreatedAt,
	}, nil
}

// toTimelineEvent converts a timeline event entry into the domain model.
func toTimelineEvent(e *entry, idx *includeIndex) (content.TimelineEvent, error) {
	var fields timelineEventFields
	if err := json.Unmarshal(e.Fields, &fields); err != nil {
		return content.TimelineEvent{}, err
	}

	personSlug := ""
	if person := idx.resolveEntry(fields.Person); person != nil {
		var pf personFields
		if err := json.Unmarshal(person.Fields, &pf); err == nil {
			personSlug = pf.Slug
		}
	}

	return content.TimelineEvent{
		ID:          e.Sys.ID,
		PersonSlug:  personSlug,
		Title:       fields.Title,
		Description: fields.Description,
		Date:        fields.Date,
		Location:    fields.Location,
	}, nil
}
