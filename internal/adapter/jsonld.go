package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mzaleski/jobscout/internal/model"
)

var scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*type="application/ld\+json"[^>]*>(.*?)</script>`)

var titleCaser = cases.Title(language.English)

// JSONLDAdapter fetches a listing page (JustJoin.it) and reads offers out of
// its embedded JSON-LD ItemList block. The page exposes no snippet text and
// no publish dates, so listings carry a slug-derived title and a nil age.
type JSONLDAdapter struct {
	pageURL string
	site    string
	client  *http.Client
}

// NewJSONLDAdapter creates an adapter for a page carrying JSON-LD structured data.
func NewJSONLDAdapter(pageURL, site string, client *http.Client) *JSONLDAdapter {
	return &JSONLDAdapter{
		pageURL: pageURL,
		site:    site,
		client:  client,
	}
}

// itemList mirrors the JSON-LD ItemList shape. Offer URLs appear either
// directly on the element or nested under item.
type itemList struct {
	Type     string        `json:"@type"`
	Elements []itemElement `json:"itemListElement"`
}

type itemElement struct {
	URL  string `json:"url"`
	Item struct {
		URL string `json:"url"`
	} `json:"item"`
}

// Fetch scans all embedded structured-data blocks for an ItemList and keeps
// offers whose slug contains a keyword. Malformed or absent embedded data
// yields zero results, not an error.
func (a *JSONLDAdapter) Fetch(ctx context.Context, keywords []string) ([]model.RawListing, error) {
	body, err := fetchDocument(ctx, a.client, a.pageURL)
	if err != nil {
		return nil, fmt.Errorf("jsonld %s: %w", a.site, err)
	}

	var listings []model.RawListing
	for _, match := range scriptBlockRegex.FindAllSubmatch(body, -1) {
		var list itemList
		if err := json.Unmarshal(match[1], &list); err != nil {
			continue
		}
		if list.Type != "ItemList" {
			continue
		}

		for _, el := range list.Elements {
			offerURL := el.URL
			if offerURL == "" {
				offerURL = el.Item.URL
			}
			if offerURL == "" {
				continue
			}
			// Match on the slug only; the host would match every offer.
			slug := slugFromURL(offerURL)
			if !matchesAny(slug, keywords) {
				continue
			}
			listings = append(listings, model.RawListing{
				URL:   offerURL,
				Title: titleFromSlug(slug),
				Site:  a.site,
			})
		}
		break // first ItemList block wins
	}

	return listings, nil
}

// slugFromURL returns the URL's final path segment.
func slugFromURL(offerURL string) string {
	path := offerURL
	if u, err := url.Parse(offerURL); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

// titleFromSlug derives a working title from an offer slug: split on "-",
// drop the trailing one or two segments (technology/location tags),
// title-case the rest. "senior-qa-engineer-warszawa-python" becomes
// "Senior Qa Engineer".
func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	switch {
	case len(parts) >= 5:
		parts = parts[:len(parts)-2]
	case len(parts) >= 2:
		parts = parts[:len(parts)-1]
	}

	return titleCaser.String(strings.Join(parts, " "))
}
