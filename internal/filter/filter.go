// Package filter evaluates the user-configured pass/fail rules against a
// completed analysis result. Rules are opt-in and independent: an unset
// config field means the rule does not exist, and no rule short-circuits
// another.
package filter

import (
	"fmt"
	"strings"

	"github.com/mzaleski/jobscout/internal/config"
	"github.com/mzaleski/jobscout/internal/heuristic"
	"github.com/mzaleski/jobscout/internal/model"
)

// Keyword sets include diacritic-folded Polish equivalents; the JD text is
// folded before matching.
var workModeKeywords = map[model.WorkMode][]string{
	model.WorkModeRemote: {"remote", "zdalnie", "zdalna", "praca zdalna", "home office", "fully remote"},
	model.WorkModeHybrid: {"hybrid", "hybrydowo", "hybrydowa", "praca hybrydowa"},
	model.WorkModeOnsite: {"on-site", "onsite", "stacjonarnie", "stacjonarna", "in office", "z biura"},
}

var salaryContextKeywords = []string{
	"salary", "salary range", "compensation",
	"pln", "zl", "eur", "usd",
	"b2b", "uop",
	"wynagrodzenie", "widelki", "stawka", "miesiecznie",
}

// Fixed rule labels, in evaluation order. Reporting displays checks in this
// order, so it is part of the contract.
const (
	RuleMatchScore    = "Match Score"
	RuleGhostRisk     = "Ghost Risk"
	RuleFreshness     = "Freshness"
	RuleWorkMode      = "Work Mode"
	RuleSalaryVisible = "Salary Visible"
	RuleRoleKeywords  = "Role Keywords"
)

// Evaluate runs every configured rule against the analysis result, the source
// JD text, and the posting age. The returned checks appear in the fixed rule
// order; unset rules produce no placeholder entry. An empty result means no
// rules were configured, not that everything passed.
func Evaluate(cfg *config.Config, result model.AnalysisResult, jdText string, postingAgeDays *int) []model.FilterCheck {
	var checks []model.FilterCheck
	text := strings.ToLower(heuristic.Fold(jdText))

	if cfg.MinMatchScore != nil {
		threshold := *cfg.MinMatchScore
		checks = append(checks, model.FilterCheck{
			Name:   RuleMatchScore,
			Passed: result.MatchScore >= threshold,
			Reason: fmt.Sprintf("match score %d vs required minimum %d", result.MatchScore, threshold),
		})
	}

	if cfg.MaxGhostScore != nil {
		threshold := *cfg.MaxGhostScore
		checks = append(checks, model.FilterCheck{
			Name:   RuleGhostRisk,
			Passed: result.GhostScore <= threshold,
			Reason: fmt.Sprintf("ghost score %d vs allowed maximum %d", result.GhostScore, threshold),
		})
	}

	if cfg.MaxAgeDays != nil {
		checks = append(checks, freshnessCheck(*cfg.MaxAgeDays, postingAgeDays))
	}

	if cfg.WorkMode != "" && cfg.WorkMode != model.WorkModeAny {
		checks = append(checks, workModeCheck(cfg.WorkMode, text))
	}

	if cfg.RequireSalary {
		matched := firstMatch(text, salaryContextKeywords)
		check := model.FilterCheck{Name: RuleSalaryVisible, Passed: matched != ""}
		if check.Passed {
			check.Reason = fmt.Sprintf("salary context found (%q)", matched)
		} else {
			check.Reason = "no salary or compensation mention in the job description"
		}
		checks = append(checks, check)
	}

	if len(cfg.RoleKeywords) > 0 {
		checks = append(checks, roleKeywordsCheck(cfg.RoleKeywords, text))
	}

	return checks
}

// freshnessCheck treats an unknown age as a pass with an explicit
// "unverifiable" reason rather than assuming a value either way.
func freshnessCheck(maxAgeDays int, postingAgeDays *int) model.FilterCheck {
	check := model.FilterCheck{Name: RuleFreshness}
	if postingAgeDays == nil {
		check.Passed = true
		check.Reason = fmt.Sprintf("posting age unknown, cannot verify against maximum of %d days", maxAgeDays)
		return check
	}
	check.Passed = *postingAgeDays <= maxAgeDays
	check.Reason = fmt.Sprintf("posting is %d days old vs allowed maximum %d", *postingAgeDays, maxAgeDays)
	return check
}

func workModeCheck(mode model.WorkMode, text string) model.FilterCheck {
	matched := firstMatch(text, workModeKeywords[mode])
	check := model.FilterCheck{Name: RuleWorkMode, Passed: matched != ""}
	if check.Passed {
		check.Reason = fmt.Sprintf("%s mentioned (%q)", mode, matched)
	} else {
		check.Reason = fmt.Sprintf("no %s mention in the job description", mode)
	}
	return check
}

func roleKeywordsCheck(keywords []string, text string) model.FilterCheck {
	var matched []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(heuristic.Fold(kw))) {
			matched = append(matched, kw)
		}
	}
	check := model.FilterCheck{Name: RuleRoleKeywords, Passed: len(matched) > 0}
	if check.Passed {
		check.Reason = fmt.Sprintf("matched keywords: %s", strings.Join(matched, ", "))
	} else {
		check.Reason = fmt.Sprintf("none of the configured keywords found: %s", strings.Join(keywords, ", "))
	}
	return check
}

// firstMatch returns the first keyword contained in text, or "".
func firstMatch(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}
