package adapter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/mzaleski/jobscout/internal/model"
)

// feedMaxResults bounds downstream cost per discovery run.
const feedMaxResults = 30

// FeedAdapter fetches a structured RSS/Atom feed (NoFluffJobs) and keeps
// entries matching at least one role keyword.
type FeedAdapter struct {
	feedURL string
	site    string
	client  *http.Client
	parser  *gofeed.Parser
	now     func() time.Time
}

// NewFeedAdapter creates an adapter for a feed endpoint. site is the
// canonical host name stamped on every listing.
func NewFeedAdapter(feedURL, site string, client *http.Client) *FeedAdapter {
	return &FeedAdapter{
		feedURL: feedURL,
		site:    site,
		client:  client,
		parser:  gofeed.NewParser(),
		now:     time.Now,
	}
}

// Fetch retrieves the feed and returns listings whose title+description text
// contains any keyword. Unreachable endpoint or an unparseable document is an
// error; the aggregator treats it as a per-site failure.
func (a *FeedAdapter) Fetch(ctx context.Context, keywords []string) ([]model.RawListing, error) {
	body, err := fetchDocument(ctx, a.client, a.feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", a.site, err)
	}

	feed, err := a.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("feed %s: parse: %w", a.site, err)
	}

	listings := make([]model.RawListing, 0, feedMaxResults)
	for _, item := range feed.Items {
		if len(listings) >= feedMaxResults {
			break
		}
		if item.Link == "" {
			continue
		}
		if !matchesAny(item.Title+" "+item.Description, keywords) {
			continue
		}

		listings = append(listings, model.RawListing{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: extractText(item.Description),
			Site:    a.site,
			AgeDays: a.ageDays(item),
		})
	}

	return listings, nil
}

// ageDays converts the entry's publish timestamp into whole days against the
// current time, floored at zero. Entries without a parseable timestamp get
// nil rather than being dropped.
func (a *FeedAdapter) ageDays(item *gofeed.Item) *int {
	pub := item.PublishedParsed
	if pub == nil {
		pub = item.UpdatedParsed
	}
	if pub == nil {
		return nil
	}
	days := int(a.now().Sub(*pub).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
