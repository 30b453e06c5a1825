// Package sheets fetches the spreadsheet-backed JSON feeds. Every field
// value in these feeds is wrapped one indirection level deep as
// {"$t": value}; the cell type unwraps that consistently.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

// Endpoints holds the full feed URLs. An empty URL disables that feed.
type Endpoints struct {
	Cases     string
	Hospitals string
	SafeZones string
	Summary   string
}

// Client fetches the four spreadsheet feed variants. The variants share
// the entry shape and differ only in which gsx$ columns are present.
type Client struct {
	endpoints Endpoints
	http      *resty.Client
	logger    *slog.Logger
}

// NewClient creates a spreadsheet-feed client.
func NewClient(endpoints Endpoints, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoints: endpoints,
		http:      resty.New().SetTimeout(timeout),
		logger:    logger,
	}
}

// cell is one field-wrapped value: {"$t": ...}. Numeric payloads are kept
// as their literal text so the usual count coercion applies.
type cell struct {
	Value string
}

func (c *cell) UnmarshalJSON(b []byte) error {
	var wrap struct {
		T json.RawMessage `json:"$t"`
	}
	if err := json.Unmarshal(b, &wrap); err != nil {
		return err
	}
	if wrap.T == nil {
		c.Value = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(wrap.T, &s); err == nil {
		c.Value = s
		return nil
	}
	c.Value = string(wrap.T)
	return nil
}

type entry map[string]cell

func (e entry) text(key string) string { return e[key].Value }

func (c *Client) fetchEntries(ctx context.Context, url, feed string) ([]entry, error) {
	if url == "" {
		return nil, fmt.Errorf("%s feed: %w", feed, domain.ErrSourceNotConfigured)
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", feed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s feed: status %d", feed, resp.StatusCode())
	}

	var payload struct {
		Feed struct {
			Entry []entry `json:"entry"`
		} `json:"feed"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode %s feed: %w", feed, err)
	}
	return payload.Feed.Entry, nil
}

// entryDate parses a gsx$date cell: the strict %m/%d/%Y format first, then
// the permissive parser. The fallback is mandatory, not best-effort: only
// when both fail does the row abort the fetch.
func entryDate(e entry) (time.Time, error) {
	raw := e.text("gsx$date")
	if date, err := domain.ParseDateStrict(raw); err == nil {
		return date, nil
	}
	date, err := domain.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("entry date: %w", err)
	}
	return date, nil
}

func entryUpdated(e entry) (time.Time, error) {
	updated, err := domain.ParseTimestamp(e.text("updated"))
	if err != nil {
		return time.Time{}, fmt.Errorf("entry updated: %w", err)
	}
	return updated, nil
}

// Cases fetches the cases_thai feed: one row per reported risk zone.
func (c *Client) Cases(ctx context.Context) ([]domain.ZoneCaseRow, error) {
	entries, err := c.fetchEntries(ctx, c.endpoints.Cases, "cases")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ZoneCaseRow, 0, len(entries))
	for i, e := range entries {
		updated, err := entryUpdated(e)
		if err != nil {
			return nil, fmt.Errorf("cases row %d: %w", i, err)
		}
		date, err := entryDate(e)
		if err != nil {
			return nil, fmt.Errorf("cases row %d: %w", i, err)
		}

		rows = append(rows, domain.ZoneCaseRow{
			Status:    e.text("gsx$status"),
			Date:      date,
			Place:     e.text("gsx$placename"),
			Province:  e.text("gsx$province"),
			PlaceEN:   e.text("gsx$placenameeng"),
			Latitude:  domain.ParseDecimal(e.text("gsx$lat")),
			Longitude: domain.ParseDecimal(e.text("gsx$lng")),
			Note:      e.text("gsx$note"),
			Source:    e.text("gsx$source"),
			Updated:   updated,
		})
	}
	return rows, nil
}

// Hospitals fetches the hospitals feed.
func (c *Client) Hospitals(ctx context.Context) ([]domain.HospitalRow, error) {
	entries, err := c.fetchEntries(ctx, c.endpoints.Hospitals, "hospitals")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.HospitalRow, 0, len(entries))
	for i, e := range entries {
		updated, err := entryUpdated(e)
		if err != nil {
			return nil, fmt.Errorf("hospitals row %d: %w", i, err)
		}

		rows = append(rows, domain.HospitalRow{
			Name:      e.text("gsx$titleth"),
			NameEN:    e.text("gsx$titleother"),
			Phone:     e.text("gsx$tel"),
			Price:     e.text("gsx$price"),
			Latitude:  domain.ParseDecimal(e.text("gsx$lat")),
			Longitude: domain.ParseDecimal(e.text("gsx$lng")),
			Updated:   updated,
		})
	}
	return rows, nil
}

// SafeZones fetches the safe_zone feed: sterilized or closed areas.
func (c *Client) SafeZones(ctx context.Context) ([]domain.SafeZoneRow, error) {
	entries, err := c.fetchEntries(ctx, c.endpoints.SafeZones, "safe zones")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.SafeZoneRow, 0, len(entries))
	for i, e := range entries {
		updated, err := entryUpdated(e)
		if err != nil {
			return nil, fmt.Errorf("safe zone row %d: %w", i, err)
		}
		date, err := entryDate(e)
		if err != nil {
			return nil, fmt.Errorf("safe zone row %d: %w", i, err)
		}

		rows = append(rows, domain.SafeZoneRow{
			Area:      e.text("gsx$area"),
			Action:    e.text("gsx$action"),
			Date:      date,
			Latitude:  domain.ParseDecimal(e.text("gsx$lat")),
			Longitude: domain.ParseDecimal(e.text("gsx$lng")),
			Source:    e.text("gsx$source"),
			Updated:   updated,
		})
	}
	return rows, nil
}

// Summary fetches the thai_summary feed: infected counts by province.
func (c *Client) Summary(ctx context.Context) ([]domain.ProvinceRow, error) {
	entries, err := c.fetchEntries(ctx, c.endpoints.Summary, "summary")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ProvinceRow, 0, len(entries))
	for i, e := range entries {
		updated, err := entryUpdated(e)
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", i, err)
		}

		rows = append(rows, domain.ProvinceRow{
			Province:   e.text("gsx$provinceth"),
			ProvinceEN: e.text("gsx$provinceeng"),
			Infected:   domain.ParseCount(e.text("gsx$infected")),
			Updated:    updated,
		})
	}
	return rows, nil
}
