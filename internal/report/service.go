// Package report composes the source adapters into the normalized output
// schema: per-day and per-country totals, retrospective day series, and the
// taxonomy-mapped detail feeds. Every call recomputes from live upstream
// data; nothing is cached or persisted.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
	"github.com/couchcryptid/covid-feed-etl/internal/observability"
)

// DailyReportSource fetches one CSV daily-report snapshot per calendar date.
type DailyReportSource interface {
	DailyReports(ctx context.Context, date time.Time) ([]domain.RawCounts, error)
}

// WorkpointSource fetches the workpoint JSON feed family.
type WorkpointSource interface {
	Constants(ctx context.Context) (domain.ConstantsFeed, error)
	Cases(ctx context.Context) ([]domain.CaseRow, error)
	World(ctx context.Context) (domain.WorldFeed, error)
	Trend(ctx context.Context) (map[string]domain.TrendPoint, error)
}

// SheetSource fetches the spreadsheet feed variants.
type SheetSource interface {
	Cases(ctx context.Context) ([]domain.ZoneCaseRow, error)
	Hospitals(ctx context.Context) ([]domain.HospitalRow, error)
	SafeZones(ctx context.Context) ([]domain.SafeZoneRow, error)
	Summary(ctx context.Context) ([]domain.ProvinceRow, error)
}

// DashboardSource scrapes the DDC dashboard.
type DashboardSource interface {
	Snapshot(ctx context.Context) (domain.DashboardSnapshot, error)
}

// FacilitySource fetches hospital/lab locations.
type FacilitySource interface {
	Facilities(ctx context.Context) ([]domain.FacilityRow, error)
}

// Service is the aggregation engine. All operations are synchronous and
// side-effect-free apart from the outbound requests; there is no shared
// mutable state beyond the readiness flag.
type Service struct {
	daily      DailyReportSource
	workpoint  WorkpointSource
	sheets     SheetSource
	dashboard  DashboardSource
	facilities FacilitySource

	defaultCountry string

	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates the aggregation service over the given sources.
func New(
	daily DailyReportSource,
	workpoint WorkpointSource,
	sheets SheetSource,
	dashboard DashboardSource,
	facilities FacilitySource,
	defaultCountry string,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		daily:          daily,
		workpoint:      workpoint,
		sheets:         sheets,
		dashboard:      dashboard,
		facilities:     facilities,
		defaultCountry: defaultCountry,
		logger:         logger,
		metrics:        metrics,
	}
}

// CheckReadiness returns nil once at least one upstream fetch has succeeded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return fmt.Errorf("no upstream source fetched successfully yet")
	}
	return nil
}

// track records fetch metrics and flips readiness on the first success.
func (s *Service) track(source string, start time.Time, err error) {
	s.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	if err == nil {
		s.ready.Store(true)
	}
}

// DailyReports returns one normalized record per daily-report row for the
// given date.
func (s *Service) DailyReports(ctx context.Context, date time.Time) ([]domain.CaseRecord, error) {
	rows, err := s.fetchDaily(ctx, date)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CaseRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, s.normalize(row))
	}
	return records, nil
}

func (s *Service) fetchDaily(ctx context.Context, date time.Time) ([]domain.RawCounts, error) {
	start := time.Now()
	rows, err := s.daily.DailyReports(ctx, date)
	s.track("csse", start, err)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.ScopeCode == "" {
			s.metrics.UnresolvedCountries.Inc()
		}
	}
	return rows, nil
}

// normalize is the only path from raw counts to a CaseRecord.
func (s *Service) normalize(raw domain.RawCounts) domain.CaseRecord {
	s.metrics.RecordsNormalized.Inc()
	return domain.Normalize(raw)
}

// Total aggregates the daily report for one date into a single global
// record. The as-of time is the latest row timestamp.
func (s *Service) Total(ctx context.Context, date time.Time) (domain.CaseRecord, error) {
	rows, err := s.fetchDaily(ctx, date)
	if err != nil {
		return domain.CaseRecord{}, err
	}

	sum := domain.RawCounts{ScopeName: "Global"}
	for _, row := range rows {
		sum.Confirmed += row.Confirmed
		sum.Deaths += row.Deaths
		sum.Recovered += row.Recovered
		if row.AsOf.After(sum.AsOf) {
			sum.AsOf = row.AsOf
		}
	}
	return s.normalize(sum), nil
}

// Country aggregates the daily report for one date over the rows resolved
// to the given alpha-2 code. An empty code falls back to the configured
// default scope. The as-of time is the earliest matching row timestamp.
func (s *Service) Country(ctx context.Context, code string, date time.Time) (domain.CaseRecord, error) {
	if code == "" {
		code = s.defaultCountry
	}
	code = strings.ToUpper(code)

	rows, err := s.fetchDaily(ctx, date)
	if err != nil {
		return domain.CaseRecord{}, err
	}

	sum := domain.RawCounts{ScopeCode: code}
	matched := false
	for _, row := range rows {
		if row.ScopeCode != code {
			continue
		}
		if !matched {
			sum.ScopeName = row.ScopeName
			sum.AsOf = row.AsOf
			matched = true
		}
		sum.Confirmed += row.Confirmed
		sum.Deaths += row.Deaths
		sum.Recovered += row.Recovered
		if row.AsOf.Before(sum.AsOf) {
			sum.AsOf = row.AsOf
		}
	}
	if !matched {
		return domain.CaseRecord{}, fmt.Errorf("no rows for country %s on %s", code, date.Format("2006-01-02"))
	}
	return s.normalize(sum), nil
}
