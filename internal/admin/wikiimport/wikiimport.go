// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package wikiimport drafts catalogue profiles from Wikipedia.

Admins paste an article title; the importer pulls the REST summary and maps
it onto a profile draft they can polish and publish in the CMS. Nothing is
written anywhere: the output is a draft, not a catalogue entry.
*/
package wikiimport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/pkg/slug"
)

// DefaultBaseURL is the English Wikipedia REST API.
const DefaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

const (
	requestTimeout  = 8 * time.Second
	maxResponseSize = 1 << 20
)

// Draft is an import result awaiting human review.
type Draft struct {
	Person    content.Person `json:"person"`
	SourceURL string         `json:"source_url"`
}

// Importer fetches article summaries and maps them to drafts.
type Importer struct {
	baseURL    string
	httpClient *http.Client
}

// NewImporter creates an importer against English Wikipedia.
func NewImporter(httpClient *http.Client) *Importer {
	return NewImporterWithBaseURL(DefaultBaseURL, httpClient)
}

// NewImporterWithBaseURL creates an importer against a specific endpoint.
// Tests point this at a local server.
func NewImporterWithBaseURL(baseURL string, httpClient *http.Client) *Importer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Importer{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// summaryResponse is the subset of the REST summary payload we map.
type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Thumbnail   struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Fetch pulls the summary for one article title and maps it to a draft.
//
// Disambiguation pages are rejected: the admin must pick a concrete article.
func (importer *Importer) Fetch(ctx context.Context, title string) (*Draft, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ValidationError("Article title is required")
	}

	endpoint := importer.baseURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wikiimport_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := importer.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("wikiimport_fetch_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("Wikipedia article")
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikiimport_unexpected_status: %d", response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("wikiimport_read_failed: %w", err)
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("wikiimport_decode_failed: %w", err)
	}

	if summary.Type == "disambiguation" {
		return nil, apperr.Unprocessable("Title is ambiguous; use a more specific article title")
	}
	if summary.Title == "" {
		return nil, apperr.NotFound("Wikipedia article")
	}

	return importer.toDraft(summary), nil
}

func (importer *Importer) toDraft(summary summaryResponse) *Draft {
	imageURL := summary.OriginalImage.Source
	if imageURL == "" {
		imageURL = summary.Thumbnail.Source
	}

	return &Draft{
		Person: content.Person{
			Slug:      slug.From(summary.Title),
			Name:      summary.Title,
			Tagline:   summary.Description,
			Biography: summary.Extract,
			ImageURL:  imageURL,
			Keywords:  keywordsFrom(summary.Description),
		},
		SourceURL: summary.ContentURLs.Desktop.Page,
	}
}

// keywordsFrom seeds search keywords from the short description, e.g.
// "Filipino nationalist and polymath" yields filipino, nationalist, polymath.
func keywordsFrom(description string) []string {
	stopwords := map[string]bool{"and": true, "or": true, "the": true, "of": true, "a": true, "an": true, "in": true}

	keywords := []string{}
	for _, word := range strings.Fields(strings.ToLower(description)) {
		word = strings.Trim(word, ".,;:()")
		if word == "" || stopwords[word] {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
