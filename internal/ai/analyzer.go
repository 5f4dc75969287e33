// Package ai turns a CV and a job description into a structured match/ghost
// assessment via an LLM call, retried only on the service-overloaded
// condition.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/mzaleski/jobscout/internal/model"
	"github.com/mzaleski/jobscout/internal/retry"
)

// Analyzer renders the analysis prompt and invokes the model provider
// through the retry executor.
type Analyzer struct {
	provider model.ModelProvider
	tmpl     *template.Template
	schedule []time.Duration
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer using the standard overload backoff.
func NewAnalyzer(provider model.ModelProvider, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		tmpl:     MatchAnalysisTemplate,
		schedule: retry.OverloadSchedule,
		logger:   logger,
	}
}

// Analyze produces a structured assessment of how well the CV matches the JD.
// Only the overloaded condition is retried; any other provider failure
// propagates immediately.
func (a *Analyzer) Analyze(ctx context.Context, cvText, jdText string) (model.AnalysisResult, error) {
	var promptBuf bytes.Buffer
	err := a.tmpl.Execute(&promptBuf, struct {
		CV string
		JD string
	}{CV: cvText, JD: jdText})
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := retry.Do(ctx, a.logger, a.schedule, retry.IsOverloaded,
		func(ctx context.Context) (string, error) {
			return a.provider.Complete(ctx, promptBuf.String())
		})
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("llm complete: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("parse analysis: %w", err)
	}

	result.MatchScore = clampScore(result.MatchScore)
	result.GhostScore = clampScore(result.GhostScore)
	return result, nil
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
