package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mzaleski/jobscout/internal/ai"
	"github.com/mzaleski/jobscout/internal/config"
	"github.com/mzaleski/jobscout/internal/discovery"
	"github.com/mzaleski/jobscout/internal/filter"
	"github.com/mzaleski/jobscout/internal/model"
	"github.com/mzaleski/jobscout/internal/page"
	"github.com/mzaleski/jobscout/internal/picker"
)

var noPick bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run discovery across the configured sites",
	Long:  "Fetches candidate postings from every configured site, deduplicates them against the application log, and (unless --list) lets you pick postings for AI analysis.",
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&noPick, "list", false, "print the discovery list and exit without the interactive picker")
	rootCmd.AddCommand(discoverCmd)
}

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreStyle = lipgloss.NewStyle().Bold(true)
)

func runDiscover(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	historyStore, closeHistory := openHistory(cfg, logger)
	defer closeHistory()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	agg := discovery.NewAggregator(historyStore, httpClient, cfg.SitePause, logger)

	results, err := agg.Discover(ctx, cfg.RoleKeywords, cfg.SearchSites)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	logger.Info("discovery complete", "postings", len(results))

	if len(results) == 0 {
		fmt.Println("No postings found. Sources may be down or the keywords too narrow.")
		return nil
	}

	if noPick || !cfg.AI.Enabled {
		printList(results)
		return nil
	}

	chosen, ok, err := picker.Run(results)
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	if !ok || len(chosen) == 0 {
		return nil
	}

	return analyzeChosen(ctx, cfg, chosen, httpClient, logger)
}

func printList(results []model.DiscoveryResult) {
	fmt.Println(headStyle.Render(fmt.Sprintf("%d postings", len(results))))
	for _, r := range results {
		line := "  " + r.Title
		var tags []string
		if r.Company != "" {
			tags = append(tags, r.Company)
		}
		tags = append(tags, r.Site)
		if r.HasSalary {
			tags = append(tags, "salary")
		}
		if r.GhostPre {
			tags = append(tags, "ghost?")
		}
		if r.AlreadySeen {
			tag := "seen"
			if r.SeenDaysAgo != nil {
				tag = fmt.Sprintf("seen %dd ago", *r.SeenDaysAgo)
			}
			tags = append(tags, tag)
		}
		fmt.Println(line, dimStyle.Render("("+strings.Join(tags, ", ")+")"))
		fmt.Println(dimStyle.Render("    " + r.URL))
	}
}

// analyzeChosen runs the full pipeline for each selected posting: JD fetch,
// AI analysis, filter evaluation, report. One posting's failure does not stop
// the rest.
func analyzeChosen(ctx context.Context, cfg *config.Config, chosen []model.DiscoveryResult, httpClient *http.Client, logger *slog.Logger) error {
	cvBytes, err := os.ReadFile(cfg.CVPath)
	if err != nil {
		return fmt.Errorf("read cv: %w", err)
	}
	cvText := string(cvBytes)

	aiClient := &http.Client{Timeout: cfg.AI.Timeout}
	provider := ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, aiClient)
	analyzer := ai.NewAnalyzer(provider, logger)

	for _, r := range chosen {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		jdText, err := page.Fetch(ctx, httpClient, r.URL)
		if err != nil {
			logger.Error("failed to fetch posting", "url", r.URL, "error", err)
			continue
		}

		result, err := analyzer.Analyze(ctx, cvText, jdText)
		if err != nil {
			logger.Error("analysis failed", "url", r.URL, "error", err)
			continue
		}

		checks := filter.Evaluate(cfg, result, jdText, r.AgeDays)
		printReport(r, result, checks)
	}
	return nil
}

func printReport(r model.DiscoveryResult, result model.AnalysisResult, checks []model.FilterCheck) {
	fmt.Println()
	fmt.Println(headStyle.Render(r.Title))
	fmt.Println(dimStyle.Render(r.URL))
	fmt.Printf("%s match %d  ghost %d\n",
		scoreStyle.Render("scores:"), result.MatchScore, result.GhostScore)
	if result.Salary != "" {
		fmt.Println("salary:", result.Salary)
	}
	if result.Summary != "" {
		fmt.Println(result.Summary)
	}
	for _, s := range result.Strengths {
		fmt.Println(dimStyle.Render("  + " + s))
	}
	for _, f := range result.RedFlags {
		fmt.Println(dimStyle.Render("  ! " + f))
	}

	if len(checks) == 0 {
		fmt.Println(dimStyle.Render("no filters configured"))
		return
	}
	for _, c := range checks {
		verdict := passStyle.Render("PASS")
		if !c.Passed {
			verdict = failStyle.Render("FAIL")
		}
		fmt.Printf("  %s %-15s %s\n", verdict, c.Name, dimStyle.Render(c.Reason))
	}
}
