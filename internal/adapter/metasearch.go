package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mzaleski/jobscout/internal/model"
)

// metaSearchMaxResults caps fallback results; the meta-search path is
// lower-confidence than the dedicated adapters.
const metaSearchMaxResults = 10

// defaultSearchInstances are public SearXNG instances tried in order. Any
// single instance may be down or rate-limited at any moment.
var defaultSearchInstances = []string{
	"https://searx.be",
	"https://searx.tiekoetter.com",
	"https://paulgo.io",
}

// MetaSearchAdapter covers any configured site without a dedicated adapter by
// issuing a site-scoped keyword query against a meta-search service. It
// accepts the first instance returning at least one result; exhausting the
// instance list yields an empty list, not an error.
type MetaSearchAdapter struct {
	site      string
	instances []string
	client    *http.Client
	logger    *slog.Logger
}

// NewMetaSearchAdapter creates a fallback adapter scoped to one site.
func NewMetaSearchAdapter(site string, client *http.Client, logger *slog.Logger) *MetaSearchAdapter {
	return &MetaSearchAdapter{
		site:      site,
		instances: defaultSearchInstances,
		client:    client,
		logger:    logger,
	}
}

// searchResponse mirrors the SearXNG JSON API response.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Fetch tries each instance in order with a site-scoped query. Per-instance
// failures (timeout, non-2xx, malformed body) mean "try the next one".
func (a *MetaSearchAdapter) Fetch(ctx context.Context, keywords []string) ([]model.RawListing, error) {
	query := fmt.Sprintf("site:%s %s", a.site, strings.Join(keywords, " "))

	for _, instance := range a.instances {
		results, err := a.search(ctx, instance, query)
		if err != nil {
			a.logger.Debug("meta-search instance failed",
				"instance", instance,
				"site", a.site,
				"error", err,
			)
			continue
		}
		if len(results) == 0 {
			continue
		}
		return results, nil
	}

	// All instances down or empty: degraded mode, not a failure.
	return nil, nil
}

func (a *MetaSearchAdapter) search(ctx context.Context, instance, query string) ([]model.RawListing, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	searchURL := instance + "/search?" + params.Encode()

	body, err := fetchDocument(ctx, a.client, searchURL)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response from %s: %w", instance, err)
	}

	listings := make([]model.RawListing, 0, metaSearchMaxResults)
	for _, r := range resp.Results {
		if len(listings) >= metaSearchMaxResults {
			break
		}
		if r.URL == "" {
			continue
		}
		listings = append(listings, model.RawListing{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: extractText(r.Content),
			Site:    a.site,
		})
	}
	return listings, nil
}
