// Package heuristic holds the cheap text classifiers run over every
// discovered listing before any AI analysis: salary presence, ghost-job
// preflag, and company-name extraction. All functions are pure and
// deterministic; false negatives are acceptable.
package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// salaryPattern matches a number with a magnitude marker (15k, 20 tys),
// a currency token, or a Polish contract-type token. Matching happens on
// diacritic-folded lowercase text, so "zł" arrives as "zl".
var salaryPattern = regexp.MustCompile(
	`\d[\d\s.,]*\s*(k|tys\.?)(\s|$|[^a-z])` +
		`|\b(pln|zl|eur|usd|gbp|chf)\b` +
		`|[€$£]` +
		`|\b(b2b|uop|uod|uz)\b` +
		`|\bumowa o prace\b|\bwidelk`)

// ghostPhrases are stock phrases of perpetual or placeholder recruiting,
// English plus diacritic-folded Polish equivalents.
var ghostPhrases = []string{
	"talent pool",
	"talent community",
	"various clients",
	"our clients",
	"ongoing recruitment",
	"always looking",
	"pipeline",
	"speculative",
	"future opportunities",
	"future projects",
	"baza kandydatow",
	"baza talentow",
	"rekrutacja ciagla",
	"stale poszukujemy",
	"przyszle projekty",
	"dla naszych klientow",
}

// companyPatterns are tried in order; the first capturing match wins.
// Conventions: "Title @ Company", "Title at Company", "Title | Company".
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s@\s*(.+)$`),
	regexp.MustCompile(`(?i)\s+at\s+(.+)$`),
	regexp.MustCompile(`\s\|\s*(.+)$`),
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ł carries a stroke, not a combining mark, so NFD leaves it alone.
var strokeReplacer = strings.NewReplacer("ł", "l", "Ł", "L")

// Fold strips combining diacritics so Polish keywords match both the spelled
// and ASCII forms ("ciągła" == "ciagla").
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		folded = s
	}
	return strokeReplacer.Replace(folded)
}

// HasSalary reports whether the combined title+snippet text mentions
// compensation. Regex-level pre-screen only, not NLP.
func HasSalary(title, snippet string) bool {
	text := strings.ToLower(Fold(title + " " + snippet))
	return salaryPattern.MatchString(text)
}

// GhostPreflag reports whether the combined text contains any stock phrase
// associated with perpetual or placeholder recruiting. Fast and low-precision;
// the deeper ghost scoring happens later in the AI analysis.
func GhostPreflag(title, snippet string) bool {
	text := strings.ToLower(Fold(title + " " + snippet))
	for _, phrase := range ghostPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// ExtractCompany pulls a probable employer name out of a listing title.
// Returns ok=false when no convention matches; callers must not substitute
// a guess.
func ExtractCompany(title string) (string, bool) {
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(title); m != nil {
			company := strings.TrimSpace(m[1])
			if company != "" {
				return company, true
			}
		}
	}
	return "", false
}
