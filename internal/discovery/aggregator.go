// Package discovery owns the discovery pipeline: it drives the per-site
// source adapters, deduplicates by URL, cross-references the application
// history, and annotates each listing with the cheap heuristics.
package discovery

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mzaleski/jobscout/internal/adapter"
	"github.com/mzaleski/jobscout/internal/heuristic"
	"github.com/mzaleski/jobscout/internal/model"
)

// Sites with dedicated adapters; anything else goes through meta-search.
const (
	feedSite   = "nofluffjobs.com"
	feedURL    = "https://nofluffjobs.com/pl/rss"
	jsonldSite = "justjoin.it"
	jsonldURL  = "https://justjoin.it/job-offers/all-locations"
)

// Aggregator produces one deduplicated, annotated discovery list per run.
type Aggregator struct {
	history   model.HistoryStore
	client    *http.Client
	sitePause time.Duration
	logger    *slog.Logger

	now        func() time.Time
	adapterFor func(site string) model.SourceAdapter // swapped in tests
}

// NewAggregator wires an aggregator with its dependencies. sitePause is the
// pause inserted between consecutive sources to respect third-party rate
// expectations.
func NewAggregator(history model.HistoryStore, client *http.Client, sitePause time.Duration, logger *slog.Logger) *Aggregator {
	a := &Aggregator{
		history:   history,
		client:    client,
		sitePause: sitePause,
		logger:    logger,
		now:       time.Now,
	}
	a.adapterFor = a.defaultAdapterFor
	return a
}

func (a *Aggregator) defaultAdapterFor(site string) model.SourceAdapter {
	switch site {
	case feedSite:
		return adapter.NewFeedAdapter(feedURL, feedSite, a.client)
	case jsonldSite:
		return adapter.NewJSONLDAdapter(jsonldURL, jsonldSite, a.client)
	default:
		return adapter.NewMetaSearchAdapter(site, a.client, a.logger)
	}
}

// Discover runs the adapters for each configured site in sequence, merges and
// deduplicates the results, and annotates them. A single source's outage is
// recorded as zero results for that site and never aborts the run; empty
// keyword or site lists are a ConfigError raised before any network activity.
func (a *Aggregator) Discover(ctx context.Context, roleKeywords, searchSites []string) ([]model.DiscoveryResult, error) {
	if len(roleKeywords) == 0 {
		return nil, &model.ConfigError{Field: "role_keywords", Reason: "must not be empty"}
	}
	if len(searchSites) == 0 {
		return nil, &model.ConfigError{Field: "search_sites", Reason: "must not be empty"}
	}

	keywords := make([]string, 0, len(roleKeywords))
	for _, kw := range roleKeywords {
		keywords = append(keywords, strings.ToLower(heuristic.Fold(kw)))
	}

	seen := a.loadHistory()

	var all []model.RawListing
	for i, rawSite := range searchSites {
		site := normalizeSite(rawSite)
		if site == "" {
			continue
		}

		listings, err := a.adapterFor(site).Fetch(ctx, keywords)
		if err != nil {
			a.logger.Warn("source failed, continuing without it",
				"site", site,
				"error", err,
			)
			listings = nil
		}
		a.logger.Info("source fetched", "site", site, "listings", len(listings))
		all = append(all, listings...)

		if i < len(searchSites)-1 {
			select {
			case <-ctx.Done():
				return a.annotate(all, seen), nil
			case <-time.After(a.sitePause):
			}
		}
	}

	return a.annotate(all, seen), nil
}

// loadHistory takes one immutable snapshot of the application log per run.
// A read failure degrades to "nothing is already-seen".
func (a *Aggregator) loadHistory() map[string]time.Time {
	seen := make(map[string]time.Time)
	if a.history == nil {
		return seen
	}
	entries, err := a.history.Entries()
	if err != nil {
		a.logger.Warn("history unavailable, treating all listings as new", "error", err)
		return seen
	}
	for _, e := range entries {
		seen[e.URL] = e.AppliedAt
	}
	return seen
}

// annotate deduplicates by exact URL (first occurrence wins, source-then-
// insertion order preserved) and fills in the heuristic and history fields.
func (a *Aggregator) annotate(listings []model.RawListing, seen map[string]time.Time) []model.DiscoveryResult {
	results := make([]model.DiscoveryResult, 0, len(listings))
	taken := make(map[string]bool, len(listings))

	for _, l := range listings {
		if taken[l.URL] {
			continue
		}
		taken[l.URL] = true

		r := model.DiscoveryResult{
			RawListing: l,
			HasSalary:  heuristic.HasSalary(l.Title, l.Snippet),
			GhostPre:   heuristic.GhostPreflag(l.Title, l.Snippet),
		}
		if company, ok := heuristic.ExtractCompany(l.Title); ok {
			r.Company = company
		}
		if appliedAt, ok := seen[l.URL]; ok {
			r.AlreadySeen = true
			days := int(a.now().Sub(appliedAt).Hours() / 24)
			if days < 0 {
				days = 0
			}
			r.SeenDaysAgo = &days
		}
		results = append(results, r)
	}

	return results
}

// normalizeSite reduces a configured site identifier to a bare host name:
// strip scheme, strip a leading "www.", drop any path.
func normalizeSite(site string) string {
	s := strings.ToLower(strings.TrimSpace(site))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return s
}
