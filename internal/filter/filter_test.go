package filter

import (
	"strings"
	"testing"

	"github.com/mzaleski/jobscout/internal/config"
	"github.com/mzaleski/jobscout/internal/model"
)

func intPtr(n int) *int { return &n }

func TestEvaluate_NoRulesConfigured(t *testing.T) {
	cfg := &config.Config{WorkMode: model.WorkModeAny}
	checks := Evaluate(cfg, model.AnalysisResult{MatchScore: 10}, "some jd text", nil)
	if len(checks) != 0 {
		t.Fatalf("expected empty check list, got %d checks", len(checks))
	}
}

func TestEvaluate_AllRulesInFixedOrder(t *testing.T) {
	cfg := &config.Config{
		MinMatchScore: intPtr(60),
		MaxGhostScore: intPtr(40),
		MaxAgeDays:    intPtr(14),
		RequireSalary: true,
		WorkMode:      model.WorkModeRemote,
		RoleKeywords:  []string{"qa", "tester"},
	}
	result := model.AnalysisResult{MatchScore: 75, GhostScore: 20}
	jd := "Remote QA position, 16000 PLN monthly"

	checks := Evaluate(cfg, result, jd, intPtr(3))
	if len(checks) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(checks))
	}

	wantOrder := []string{
		RuleMatchScore, RuleGhostRisk, RuleFreshness,
		RuleWorkMode, RuleSalaryVisible, RuleRoleKeywords,
	}
	for i, want := range wantOrder {
		if checks[i].Name != want {
			t.Errorf("checks[%d].Name = %q, want %q", i, checks[i].Name, want)
		}
		if !checks[i].Passed {
			t.Errorf("checks[%d] (%s) failed: %s", i, checks[i].Name, checks[i].Reason)
		}
	}
}

func TestEvaluate_CheckCountMatchesConfiguredRules(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{"one threshold", &config.Config{MinMatchScore: intPtr(50)}, 1},
		{"two thresholds", &config.Config{MinMatchScore: intPtr(50), MaxGhostScore: intPtr(50)}, 2},
		{"salary only", &config.Config{RequireSalary: true}, 1},
		{"work mode any is not a rule", &config.Config{WorkMode: model.WorkModeAny}, 0},
		{"work mode onsite", &config.Config{WorkMode: model.WorkModeOnsite}, 1},
		{"keywords", &config.Config{RoleKeywords: []string{"qa"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := Evaluate(tt.cfg, model.AnalysisResult{}, "jd", nil)
			if len(checks) != tt.want {
				t.Errorf("got %d checks, want %d", len(checks), tt.want)
			}
		})
	}
}

func TestEvaluate_MatchScoreThreshold(t *testing.T) {
	cfg := &config.Config{MinMatchScore: intPtr(70)}

	checks := Evaluate(cfg, model.AnalysisResult{MatchScore: 70}, "", nil)
	if !checks[0].Passed {
		t.Error("score equal to threshold must pass")
	}

	checks = Evaluate(cfg, model.AnalysisResult{MatchScore: 69}, "", nil)
	if checks[0].Passed {
		t.Error("score below threshold must fail")
	}
}

func TestEvaluate_GhostScoreThreshold(t *testing.T) {
	cfg := &config.Config{MaxGhostScore: intPtr(30)}

	checks := Evaluate(cfg, model.AnalysisResult{GhostScore: 30}, "", nil)
	if !checks[0].Passed {
		t.Error("ghost score equal to threshold must pass")
	}

	checks = Evaluate(cfg, model.AnalysisResult{GhostScore: 31}, "", nil)
	if checks[0].Passed {
		t.Error("ghost score above threshold must fail")
	}
}

func TestEvaluate_FreshnessUnknownAgePassesAsUnverifiable(t *testing.T) {
	cfg := &config.Config{MaxAgeDays: intPtr(10)}

	checks := Evaluate(cfg, model.AnalysisResult{}, "", nil)
	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}
	if !checks[0].Passed {
		t.Error("unknown age must pass")
	}
	if got := checks[0].Reason; got == "" || !contains(got, "unknown") {
		t.Errorf("reason should state the age is unverifiable, got %q", got)
	}
}

func TestEvaluate_FreshnessKnownAge(t *testing.T) {
	cfg := &config.Config{MaxAgeDays: intPtr(10)}

	if checks := Evaluate(cfg, model.AnalysisResult{}, "", intPtr(10)); !checks[0].Passed {
		t.Error("age equal to maximum must pass")
	}
	if checks := Evaluate(cfg, model.AnalysisResult{}, "", intPtr(11)); checks[0].Passed {
		t.Error("age above maximum must fail")
	}
}

func TestEvaluate_WorkModePolishEquivalents(t *testing.T) {
	cfg := &config.Config{WorkMode: model.WorkModeRemote}

	checks := Evaluate(cfg, model.AnalysisResult{}, "Oferujemy pracę zdalną w zespole QA", nil)
	if !checks[0].Passed {
		t.Errorf("folded Polish remote mention must pass: %s", checks[0].Reason)
	}

	checks = Evaluate(cfg, model.AnalysisResult{}, "Praca stacjonarna w biurze w Krakowie", nil)
	if checks[0].Passed {
		t.Error("onsite-only JD must fail the remote rule")
	}
}

func TestEvaluate_SalaryVisible(t *testing.T) {
	cfg := &config.Config{RequireSalary: true}

	checks := Evaluate(cfg, model.AnalysisResult{}, "Wynagrodzenie: 15 000 zł", nil)
	if !checks[0].Passed {
		t.Errorf("salary context must pass: %s", checks[0].Reason)
	}

	checks = Evaluate(cfg, model.AnalysisResult{}, "Great team, modern stack", nil)
	if checks[0].Passed {
		t.Error("JD without compensation context must fail")
	}
}

func TestEvaluate_RoleKeywordsReasonListsMatches(t *testing.T) {
	cfg := &config.Config{RoleKeywords: []string{"QA", "automation", "kotlin"}}

	checks := Evaluate(cfg, model.AnalysisResult{}, "Senior QA with automation experience", nil)
	if !checks[0].Passed {
		t.Fatalf("expected pass: %s", checks[0].Reason)
	}
	if !contains(checks[0].Reason, "QA") || !contains(checks[0].Reason, "automation") {
		t.Errorf("reason should list matched keywords, got %q", checks[0].Reason)
	}
	if contains(checks[0].Reason, "kotlin") {
		t.Errorf("reason should not list unmatched keywords, got %q", checks[0].Reason)
	}

	checks = Evaluate(cfg, model.AnalysisResult{}, "Accounting role", nil)
	if checks[0].Passed {
		t.Fatal("expected fail")
	}
	if !contains(checks[0].Reason, "kotlin") {
		t.Errorf("failure reason should echo the configured list, got %q", checks[0].Reason)
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
