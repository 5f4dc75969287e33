// Package page fetches a single job-description page and reduces it to plain
// text suitable for the analysis prompt.
package page

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mzaleski/jobscout/internal/model"
)

// maxTextLen keeps the JD within the prompt budget.
const maxTextLen = 12000

var (
	scriptStyleRegex = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
)

// Fetch GETs url with browser-like headers and returns the page body as
// collapsed plain text, truncated to the prompt cap.
func Fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "pl,en-US;q=0.8,en;q=0.6")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("fetch %s", url)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	return Clean(string(body)), nil
}

// Clean strips scripts, styles, tags, and entities, collapses whitespace, and
// truncates to the prompt cap.
func Clean(rawHTML string) string {
	text := scriptStyleRegex.ReplaceAllString(rawHTML, " ")
	text = htmlTagRegex.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxTextLen {
		// Back off to a rune boundary so the cut never splits a multibyte rune.
		cut := maxTextLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
