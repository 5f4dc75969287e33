// Package adapter implements the per-site source adapters. Each adapter does
// one network round trip and normalizes that site's shape into RawListing;
// the aggregator does not care which adapter produced an item.
package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mzaleski/jobscout/internal/heuristic"
	"github.com/mzaleski/jobscout/internal/model"
)

// Some sources vary response shape by User-Agent and Accept-Language, so every
// request goes out looking like a Polish-locale browser.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptLanguage = "pl,en-US;q=0.8,en;q=0.6"
)

// fetchDocument GETs url with browser-like headers and returns the raw body.
// Non-2xx responses yield a model.HTTPError.
func fetchDocument(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("fetch %s", url),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return body, nil
}

// matchesAny reports whether text contains at least one of the keywords
// (OR semantics). Keywords arrive lowercase-folded from the aggregator, so
// the source text gets the same treatment before matching.
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(heuristic.Fold(text))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
