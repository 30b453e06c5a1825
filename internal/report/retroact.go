package report

import (
	"context"
	"time"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

// retroact replays a point-in-time query across the trailing window
// today-days .. today-1 inclusive, keying each result by its weekday label.
// Each date is queried independently, with no deltas and no caching between
// adjacent days, so upstream revisions show through per date. The current,
// possibly-incomplete day is never included. Weekday labels collide for
// windows of 8 days or more; collisions overwrite as-is.
func retroact(days int, query func(time.Time) (domain.CaseRecord, error)) (domain.DaySeries, error) {
	series := domain.DaySeries{}
	today := domain.Now()

	for offset := days; offset >= 1; offset-- {
		date := today.AddDate(0, 0, -offset)
		record, err := query(date)
		if err != nil {
			return nil, err
		}
		series[date.Format("Mon")] = record
	}
	return series, nil
}

// Retroact builds a day-keyed series of global totals over the trailing
// window.
func (s *Service) Retroact(ctx context.Context, days int) (domain.DaySeries, error) {
	return retroact(days, func(date time.Time) (domain.CaseRecord, error) {
		return s.Total(ctx, date)
	})
}

// CountryRetroact builds a day-keyed series of one country's totals over
// the trailing window.
func (s *Service) CountryRetroact(ctx context.Context, code string, days int) (domain.DaySeries, error) {
	return retroact(days, func(date time.Time) (domain.CaseRecord, error) {
		return s.Country(ctx, code, date)
	})
}

// PastTrend builds the trailing-window series from the workpoint trend
// mapping instead of replaying per-date fetches. Dates with no trend entry
// are skipped entirely, without placeholder zero records, so the series may be
// shorter than the window.
func (s *Service) PastTrend(ctx context.Context, days int) (domain.DaySeries, error) {
	start := time.Now()
	trend, err := s.workpoint.Trend(ctx)
	s.track("workpoint", start, err)
	if err != nil {
		return nil, err
	}

	series := domain.DaySeries{}
	today := domain.Now()
	for offset := days; offset >= 1; offset-- {
		date := today.AddDate(0, 0, -offset)
		point, ok := trend[date.Format("2006-01-02")]
		if !ok {
			continue
		}
		series[date.Format("Mon")] = s.normalize(domain.RawCounts{
			ScopeName: "Thailand",
			ScopeCode: "TH",
			Confirmed: point.Confirmed,
			Deaths:    point.Deaths,
			Recovered: point.Recovered,
			AsOf:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local),
		})
	}
	return series, nil
}
