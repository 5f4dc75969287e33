package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mzaleski/jobscout/internal/model"
)

// Config is the root configuration for jobscout.
type Config struct {
	// Discovery inputs.
	RoleKeywords []string
	SearchSites  []string

	// Optional filter rules; a nil pointer means the rule is not active.
	MinMatchScore *int
	MaxGhostScore *int
	MaxAgeDays    *int
	RequireSalary bool
	WorkMode      model.WorkMode

	CVPath    string // plain-text CV used in the analysis prompt
	HistoryDB string // path to the application-log sqlite file

	SitePause    time.Duration // pause between sources during discovery
	FetchTimeout time.Duration // per-source HTTP timeout

	AI AIConfig
}

// AIConfig controls the OpenAI analysis layer.
type AIConfig struct {
	Enabled bool
	BaseURL string
	Model   string
	APIKey  string // expanded from env var by Load
	Timeout time.Duration
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultHistoryDB     = "applications.db"
	defaultSitePause     = 2 * time.Second
	defaultFetchTimeout  = 20 * time.Second
	defaultAITimeout     = 60 * time.Second
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	RoleKeywords  []string    `yaml:"role_keywords"`
	SearchSites   []string    `yaml:"search_sites"`
	MinMatchScore *int        `yaml:"min_match_score"`
	MaxGhostScore *int        `yaml:"max_ghost_score"`
	MaxAgeDays    *int        `yaml:"max_age_days"`
	RequireSalary bool        `yaml:"require_salary"`
	WorkMode      string      `yaml:"work_mode"`
	CVPath        string      `yaml:"cv_path"`
	HistoryDB     string      `yaml:"history_db"`
	SitePause     string      `yaml:"site_pause"`
	FetchTimeout  string      `yaml:"fetch_timeout"`
	AI            rawAIConfig `yaml:"ai"`
}

type rawAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Environment variables in the file are expanded first so
// secrets can be referenced as ${VAR}.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	sitePause := defaultSitePause
	if raw.SitePause != "" {
		sitePause, err = time.ParseDuration(raw.SitePause)
		if err != nil {
			return nil, fmt.Errorf("parse site_pause %q: %w", raw.SitePause, err)
		}
	}

	fetchTimeout := defaultFetchTimeout
	if raw.FetchTimeout != "" {
		fetchTimeout, err = time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse fetch_timeout %q: %w", raw.FetchTimeout, err)
		}
	}

	aiTimeout := defaultAITimeout
	if raw.AI.Timeout != "" {
		aiTimeout, err = time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	aiBaseURL := raw.AI.BaseURL
	if aiBaseURL == "" {
		aiBaseURL = defaultOpenAIBaseURL
	}

	historyDB := raw.HistoryDB
	if historyDB == "" {
		historyDB = defaultHistoryDB
	}

	workMode := model.WorkModeAny
	if raw.WorkMode != "" {
		workMode = model.WorkMode(raw.WorkMode)
	}

	cfg := &Config{
		RoleKeywords:  raw.RoleKeywords,
		SearchSites:   raw.SearchSites,
		MinMatchScore: raw.MinMatchScore,
		MaxGhostScore: raw.MaxGhostScore,
		MaxAgeDays:    raw.MaxAgeDays,
		RequireSalary: raw.RequireSalary,
		WorkMode:      workMode,
		CVPath:        raw.CVPath,
		HistoryDB:     historyDB,
		SitePause:     sitePause,
		FetchTimeout:  fetchTimeout,
		AI: AIConfig{
			Enabled: raw.AI.Enabled,
			BaseURL: aiBaseURL,
			Model:   raw.AI.Model,
			APIKey:  raw.AI.APIKey,
			Timeout: aiTimeout,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.RoleKeywords) == 0 {
		return fmt.Errorf("role_keywords must not be empty")
	}
	if len(cfg.SearchSites) == 0 {
		return fmt.Errorf("search_sites must not be empty")
	}

	switch cfg.WorkMode {
	case model.WorkModeAny, model.WorkModeRemote, model.WorkModeHybrid, model.WorkModeOnsite:
	default:
		return fmt.Errorf("work_mode must be one of remote, hybrid, onsite, any; got %q", cfg.WorkMode)
	}

	if cfg.MinMatchScore != nil && (*cfg.MinMatchScore < 0 || *cfg.MinMatchScore > 100) {
		return fmt.Errorf("min_match_score must be between 0 and 100, got %d", *cfg.MinMatchScore)
	}
	if cfg.MaxGhostScore != nil && (*cfg.MaxGhostScore < 0 || *cfg.MaxGhostScore > 100) {
		return fmt.Errorf("max_ghost_score must be between 0 and 100, got %d", *cfg.MaxGhostScore)
	}
	if cfg.MaxAgeDays != nil && *cfg.MaxAgeDays < 0 {
		return fmt.Errorf("max_age_days must be non-negative, got %d", *cfg.MaxAgeDays)
	}

	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.enabled is true")
		}
		if cfg.AI.Model == "" {
			return fmt.Errorf("ai.model is required when ai.enabled is true")
		}
		if cfg.CVPath == "" {
			return fmt.Errorf("cv_path is required when ai.enabled is true")
		}
	}

	return nil
}
