// Command sourcecheck exercises every configured upstream source end to end
// and reports per-source pass/fail, so feed drift is caught before it shows
// up as serving errors. Sources left unconfigured are skipped.
//
// Usage:
//
//	COVID_CASE_API_HOST=... COVID_WORKPOINT_API_HOST=... go run ./cmd/sourcecheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/covid-feed-etl/internal/adapter/csse"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/ddc"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/healthmap"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/sheets"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/workpoint"
	"github.com/couchcryptid/covid-feed-etl/internal/config"
	"github.com/couchcryptid/covid-feed-etl/internal/domain"
	"github.com/couchcryptid/covid-feed-etl/internal/observability"
	"github.com/couchcryptid/covid-feed-etl/internal/report"
)

// phase tracks pass/fail for one source check.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if code := run(cfg); code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config) int {
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetricsForTesting()

	daily := csse.NewClient(cfg.CaseAPIHost, cfg.UpstreamTimeout, logger)
	workpointClient := workpoint.NewClient(cfg.WorkpointAPIHost, cfg.UpstreamTimeout, logger)
	sheetsClient := sheets.NewClient(sheets.Endpoints{
		Cases:     cfg.CasesSheetURL,
		Hospitals: cfg.HospitalsSheetURL,
		SafeZones: cfg.SafeZoneSheetURL,
		Summary:   cfg.SummarySheetURL,
	}, cfg.UpstreamTimeout, logger)
	dashboard := ddc.NewClient(cfg.DashboardURL, cfg.UpstreamTimeout, logger, metrics)
	facilities := healthmap.NewClient(cfg.HealthMapURL, cfg.UpstreamTimeout, logger)

	service := report.New(daily, workpointClient, sheetsClient, dashboard, facilities, cfg.DefaultCountry, logger, metrics)

	ctx := context.Background()
	yesterday := domain.Now().AddDate(0, 0, -1)

	phases := []*phase{
		checkDaily(ctx, service, yesterday),
		checkWorkpoint(ctx, service),
		checkSheets(ctx, service),
		checkDashboard(ctx, service),
		checkFacilities(ctx, service),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d sources failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("\nall %d sources ok\n", len(phases))
	return 0
}

func checkDaily(ctx context.Context, service *report.Service, date time.Time) *phase {
	p := &phase{name: "csse daily reports"}

	records, err := service.DailyReports(ctx, date)
	if err != nil {
		p.errorf("fetch: %v", err)
		return p
	}
	if len(records) == 0 {
		p.errorf("no rows for %s", date.Format("2006-01-02"))
		return p
	}

	resolved := 0
	for _, r := range records {
		if r.Active != r.Confirmed-r.Recovered-r.Deaths {
			p.errorf("%s: active %d does not match confirmed-recovered-deaths", r.ScopeName, r.Active)
		}
		if r.ScopeCode != "" {
			resolved++
		}
	}
	if resolved == 0 {
		p.errorf("no row resolved to a country code")
	}

	if _, err := service.Total(ctx, date); err != nil {
		p.errorf("total: %v", err)
	}
	if _, err := service.Retroact(ctx, 2); err != nil {
		p.errorf("retroact: %v", err)
	}
	return p
}

func checkWorkpoint(ctx context.Context, service *report.Service) *phase {
	p := &phase{name: "workpoint feeds"}

	constants, err := service.Constants(ctx)
	if err != nil {
		p.errorf("constants: %v", err)
	} else if constants.Confirmed == 0 {
		p.errorf("constants: confirmed is zero")
	}

	cases, err := service.Cases(ctx)
	if err != nil {
		p.errorf("cases: %v", err)
	} else {
		for i, c := range cases {
			if c.Status == "" || c.Category == "" {
				p.errorf("case %d: unmapped status or category", i)
			}
		}
	}

	if _, err := service.World(ctx); err != nil {
		p.errorf("world: %v", err)
	}
	if _, err := service.PastTrend(ctx, 6); err != nil {
		p.errorf("trend: %v", err)
	}
	return p
}

func checkSheets(ctx context.Context, service *report.Service) *phase {
	p := &phase{name: "spreadsheet feeds"}

	checks := []struct {
		name string
		call func() error
	}{
		{"cases", func() error { _, err := service.CaseZones(ctx); return err }},
		{"hospitals", func() error { _, err := service.Hospitals(ctx); return err }},
		{"safe zones", func() error { _, err := service.SafeZones(ctx); return err }},
		{"provinces", func() error { _, err := service.ProvinceSummaries(ctx); return err }},
	}
	for _, c := range checks {
		if err := c.call(); err != nil && !errors.Is(err, domain.ErrSourceNotConfigured) {
			p.errorf("%s: %v", c.name, err)
		}
	}
	return p
}

func checkDashboard(ctx context.Context, service *report.Service) *phase {
	p := &phase{name: "ddc dashboard"}

	dash, err := service.Dashboard(ctx)
	if errors.Is(err, domain.ErrSourceNotConfigured) {
		return p
	}
	if err != nil {
		p.errorf("scrape: %v", err)
		return p
	}
	if dash.Confirmed == 0 {
		p.errorf("confirmed is zero")
	}
	if dash.AsOf.IsZero() {
		p.errorf("timestamp missing")
	}
	return p
}

func checkFacilities(ctx context.Context, service *report.Service) *phase {
	p := &phase{name: "health map"}

	rows, err := service.Facilities(ctx)
	if errors.Is(err, domain.ErrSourceNotConfigured) {
		return p
	}
	if err != nil {
		p.errorf("fetch: %v", err)
		return p
	}
	if len(rows) == 0 {
		p.errorf("no facilities returned")
	}
	return p
}
