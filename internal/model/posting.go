package model

import (
	"context"
	"time"
)

// RawListing is a candidate posting as returned by a single source adapter,
// before dedup and cross-referencing.
type RawListing struct {
	URL     string // dedup key, canonical link to the posting
	Title   string
	Snippet string // short free text, may be empty
	Site    string // canonical host name of the source
	AgeDays *int   // nil when the source exposes no publish date
}

// DiscoveryResult is a deduplicated, annotated listing produced by the
// Aggregator for one discovery run.
type DiscoveryResult struct {
	RawListing
	Company     string // heuristically extracted, empty when no convention matched
	HasSalary   bool
	GhostPre    bool // cheap stock-phrase preflag, not a verdict
	AlreadySeen bool
	SeenDaysAgo *int // nil unless AlreadySeen
}

// ApplicationEntry is one row of the persisted application log. The discovery
// core only reads these; writes go through the history store's Append.
type ApplicationEntry struct {
	URL       string
	AppliedAt time.Time
}

// AnalysisResult is the structured output of the AI match analysis.
type AnalysisResult struct {
	MatchScore int      `json:"match_score"` // 0-100, fit against the CV
	GhostScore int      `json:"ghost_score"` // 0-100, likelihood of a ghost job
	Salary     string   `json:"salary"`      // as stated in the JD, or empty
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	RedFlags   []string `json:"red_flags"`
}

// FilterCheck is one evaluated filter rule. Checks are emitted in the fixed
// rule order; downstream reporting displays them as-is.
type FilterCheck struct {
	Name   string
	Passed bool
	Reason string
}

// WorkMode is the user's preferred work arrangement.
type WorkMode string

const (
	WorkModeAny    WorkMode = "any"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// SourceAdapter fetches raw listings from one external site. One network
// round trip per call; keywords arrive lowercase-folded.
type SourceAdapter interface {
	Fetch(ctx context.Context, keywords []string) ([]RawListing, error)
}

// HistoryStore reads and appends the persisted application log.
// Entries must be a cheap, side-effect-free snapshot read.
type HistoryStore interface {
	Entries() ([]ApplicationEntry, error)
	Append(url string, appliedAt time.Time) error
}

// ModelProvider sends a prompt to an LLM and returns the raw text response.
type ModelProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
