// Package csse fetches and parses the CSSE daily-report CSV snapshots.
package csse

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

// Client fetches one daily-report CSV per call. Every call is a fresh
// upstream round trip; nothing is cached.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a daily-report client rooted at the CSSE base host.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		logger: logger,
	}
}

// Column order of the daily-report CSVs.
const (
	colProvince = iota
	colCountry
	colLastUpdate
	colConfirmed
	colDeaths
	colRecovered
)

// DailyReports fetches the snapshot for one calendar date and returns one
// raw count row per line, header skipped, counts coerced (missing or
// non-numeric fields become zero) and the country code resolved with the
// province-column fallback.
func (c *Client) DailyReports(ctx context.Context, date time.Time) ([]domain.RawCounts, error) {
	path := fmt.Sprintf("/csse_covid_19_daily_reports/%s.csv", date.Format("01-02-2006"))

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch daily reports: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch daily reports: status %d", resp.StatusCode())
	}

	reader := csv.NewReader(bytes.NewReader(resp.Body()))
	reader.FieldsPerRecord = -1
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse daily reports: %w", err)
	}

	rows := make([]domain.RawCounts, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}

		province := field(line, colProvince)
		country := field(line, colCountry)

		asOf, err := domain.ParseTimestamp(field(line, colLastUpdate))
		if err != nil {
			return nil, fmt.Errorf("daily report line %d: %w", i, err)
		}

		rows = append(rows, domain.RawCounts{
			ScopeName: country,
			ScopeCode: domain.ResolveCountry(country, province),
			Province:  province,
			Confirmed: domain.ParseCount(field(line, colConfirmed)),
			Deaths:    domain.ParseCount(field(line, colDeaths)),
			Recovered: domain.ParseCount(field(line, colRecovered)),
			AsOf:      asOf,
		})
	}

	c.logger.Debug("fetched daily reports", "date", date.Format("01-02-2006"), "rows", len(rows))
	return rows, nil
}

// field returns the column at index, tolerating short lines.
func field(line []string, index int) string {
	if index >= len(line) {
		return ""
	}
	return line[index]
}
