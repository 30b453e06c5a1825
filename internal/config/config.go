// Package config loads service settings from COVID_-prefixed environment
// variables, applying defaults where unset.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all service settings. Upstream base hosts are opaque strings
// substituted into fixed path templates; no well-formedness validation is
// performed beyond presence checks.
type Config struct {
	HTTPAddr  string `koanf:"http_addr"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	UpstreamTimeout time.Duration `koanf:"upstream_timeout"`

	// Required source families.
	CaseAPIHost      string `koanf:"case_api_host"`      // CSSE daily-report CSVs
	WorkpointAPIHost string `koanf:"workpoint_api_host"` // workpoint JSON feeds

	// Optional sources; an empty URL disables the feed.
	CasesSheetURL     string `koanf:"cases_sheet_url"`
	HospitalsSheetURL string `koanf:"hospitals_sheet_url"`
	SafeZoneSheetURL  string `koanf:"safe_zone_sheet_url"`
	SummarySheetURL   string `koanf:"summary_sheet_url"`
	DashboardURL      string `koanf:"dashboard_url"`
	HealthMapURL      string `koanf:"health_map_url"`

	// DefaultCountry scopes per-country queries when no code is given.
	DefaultCountry string `koanf:"default_country"`
}

// Load reads configuration from COVID_-prefixed environment variables,
// layered over defaults. COVID_CASE_API_HOST -> case_api_host, and so on.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:         ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		ShutdownTimeout:  10 * time.Second,
		UpstreamTimeout:  15 * time.Second,
		CaseAPIHost:      "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data",
		WorkpointAPIHost: "https://covid19.workpointnews.com/api",
		DefaultCountry:   "TH",
	}

	k := koanf.New(".")
	provider := env.Provider("COVID_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "covid_")
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CaseAPIHost == "" {
		return nil, errors.New("COVID_CASE_API_HOST is required")
	}
	if cfg.WorkpointAPIHost == "" {
		return nil, errors.New("COVID_WORKPOINT_API_HOST is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid COVID_SHUTDOWN_TIMEOUT")
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, errors.New("invalid COVID_UPSTREAM_TIMEOUT")
	}
	if cfg.DefaultCountry == "" {
		return nil, errors.New("COVID_DEFAULT_COUNTRY must not be empty")
	}

	return cfg, nil
}
