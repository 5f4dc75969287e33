package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/match_analysis.md
var matchAnalysisPromptRaw string

// MatchAnalysisTemplate is the parsed prompt template for the CV/JD match
// analysis. Parsed once at package init; reused on every Analyze call.
var MatchAnalysisTemplate = template.Must(template.New("match_analysis").Parse(matchAnalysisPromptRaw))
