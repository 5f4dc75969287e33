package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mzaleski/jobscout/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAdapter returns canned listings (or an error) and records the keywords
// it was called with.
type fakeAdapter struct {
	listings []model.RawListing
	err      error
	gotKW    []string
}

func (f *fakeAdapter) Fetch(_ context.Context, keywords []string) ([]model.RawListing, error) {
	f.gotKW = keywords
	return f.listings, f.err
}

type fakeHistory struct {
	entries []model.ApplicationEntry
	err     error
}

func (f *fakeHistory) Entries() ([]model.ApplicationEntry, error) { return f.entries, f.err }
func (f *fakeHistory) Append(string, time.Time) error             { return nil }

func newTestAggregator(history model.HistoryStore, adapters map[string]*fakeAdapter) *Aggregator {
	a := NewAggregator(history, nil, 0, discardLogger())
	a.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}
	a.adapterFor = func(site string) model.SourceAdapter {
		if fa, ok := adapters[site]; ok {
			return fa
		}
		return &fakeAdapter{}
	}
	return a
}

func listing(url, title string) model.RawListing {
	return model.RawListing{URL: url, Title: title, Site: "example.com"}
}

func TestDiscover_EmptyInputsAreConfigErrors(t *testing.T) {
	a := newTestAggregator(&fakeHistory{}, nil)

	_, err := a.Discover(context.Background(), nil, []string{"justjoin.it"})
	var cfgErr *model.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for empty keywords, got %v", err)
	}

	_, err = a.Discover(context.Background(), []string{"qa"}, nil)
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for empty sites, got %v", err)
	}
}

func TestDiscover_DeduplicatesByURLFirstSeenOrder(t *testing.T) {
	adapters := map[string]*fakeAdapter{
		"a.com": {listings: []model.RawListing{
			listing("https://x.com/1", "QA Engineer @ Acme"),
			listing("https://x.com/2", "Tester"),
		}},
		"b.com": {listings: []model.RawListing{
			listing("https://x.com/2", "Tester (duplicate)"),
			listing("https://x.com/3", "QA Lead"),
		}},
	}
	a := newTestAggregator(&fakeHistory{}, adapters)

	results, err := a.Discover(context.Background(), []string{"qa"}, []string{"a.com", "b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantOrder := []string{"https://x.com/1", "https://x.com/2", "https://x.com/3"}
	for i, want := range wantOrder {
		if results[i].URL != want {
			t.Errorf("result[%d].URL = %s, want %s", i, results[i].URL, want)
		}
	}
	// First occurrence wins.
	if results[1].Title != "Tester" {
		t.Errorf("duplicate should keep first occurrence, got title %q", results[1].Title)
	}
}

func TestDiscover_CrossReferencesHistory(t *testing.T) {
	applied := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	history := &fakeHistory{entries: []model.ApplicationEntry{
		{URL: "https://x.com/old", AppliedAt: applied},
	}}
	adapters := map[string]*fakeAdapter{
		"a.com": {listings: []model.RawListing{
			listing("https://x.com/old", "QA Engineer"),
			listing("https://x.com/new", "QA Tester"),
		}},
	}
	a := newTestAggregator(history, adapters)

	results, err := a.Discover(context.Background(), []string{"qa"}, []string{"a.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := results[0]
	if !old.AlreadySeen {
		t.Error("expected AlreadySeen for URL present in history")
	}
	if old.SeenDaysAgo == nil || *old.SeenDaysAgo != 7 {
		t.Errorf("SeenDaysAgo = %v, want 7", old.SeenDaysAgo)
	}

	fresh := results[1]
	if fresh.AlreadySeen || fresh.SeenDaysAgo != nil {
		t.Errorf("fresh listing should not be marked seen: %+v", fresh)
	}
}

func TestDiscover_HistoryFailureDegradesToNoHistory(t *testing.T) {
	history := &fakeHistory{err: errors.New("disk gone")}
	adapters := map[string]*fakeAdapter{
		"a.com": {listings: []model.RawListing{listing("https://x.com/1", "QA")}},
	}
	a := newTestAggregator(history, adapters)

	results, err := a.Discover(context.Background(), []string{"qa"}, []string{"a.com"})
	if err != nil {
		t.Fatalf("history failure must not fail discovery: %v", err)
	}
	if len(results) != 1 || results[0].AlreadySeen {
		t.Fatalf("expected one unseen result, got %+v", results)
	}
}

func TestDiscover_SourceFailureContinues(t *testing.T) {
	adapters := map[string]*fakeAdapter{
		"a.com": {err: errors.New("connection refused")},
		"b.com": {listings: []model.RawListing{listing("https://x.com/1", "QA")}},
	}
	a := newTestAggregator(&fakeHistory{}, adapters)

	results, err := a.Discover(context.Background(), []string{"qa"}, []string{"a.com", "b.com"})
	if err != nil {
		t.Fatalf("one source's outage must not abort discovery: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result from the healthy source, got %d", len(results))
	}
}

func TestDiscover_AnnotatesWithHeuristics(t *testing.T) {
	adapters := map[string]*fakeAdapter{
		"a.com": {listings: []model.RawListing{
			{URL: "https://x.com/1", Title: "QA Engineer @ Acme Corp", Snippet: "16000-25000 PLN B2B", Site: "a.com"},
			{URL: "https://x.com/2", Title: "QA Tester", Snippet: "join our talent pool", Site: "a.com"},
		}},
	}
	a := newTestAggregator(&fakeHistory{}, adapters)

	results, err := a.Discover(context.Background(), []string{"qa"}, []string{"a.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := results[0]
	if first.Company != "Acme Corp" {
		t.Errorf("Company = %q, want Acme Corp", first.Company)
	}
	if !first.HasSalary {
		t.Error("expected HasSalary for PLN range")
	}
	if first.GhostPre {
		t.Error("unexpected ghost preflag")
	}

	second := results[1]
	if second.Company != "" {
		t.Errorf("Company = %q, want empty (no convention matched)", second.Company)
	}
	if !second.GhostPre {
		t.Error("expected ghost preflag for talent pool phrase")
	}
}

func TestDiscover_NormalizesSitesAndFoldsKeywords(t *testing.T) {
	fa := &fakeAdapter{}
	a := newTestAggregator(&fakeHistory{}, map[string]*fakeAdapter{"justjoin.it": fa})

	_, err := a.Discover(context.Background(), []string{"Inżynier QA"}, []string{"https://www.justjoin.it/offers"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fa.gotKW) != 1 || fa.gotKW[0] != "inzynier qa" {
		t.Errorf("keywords = %v, want lowercase-folded", fa.gotKW)
	}
}

func TestNormalizeSite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.nofluffjobs.com", "nofluffjobs.com"},
		{"http://justjoin.it/offers", "justjoin.it"},
		{"Pracuj.pl", "pracuj.pl"},
		{" www.example.com/a/b ", "example.com"},
	}
	for _, tt := range tests {
		if got := normalizeSite(tt.in); got != tt.want {
			t.Errorf("normalizeSite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
