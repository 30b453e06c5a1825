// Package workpoint fetches the workpoint JSON feed family: constants,
// cases, world, and trend.
package workpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

// Client fetches the four workpoint sub-resources. Each call is one GET to
// <base>/<resource>.json.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a workpoint client rooted at the feed's base host.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, resource string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get("/" + resource + ".json")
	if err != nil {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch %s: status %d", resource, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}

// Constants fetches the current-totals snapshot. The payload is keyed by
// Thai field names; count values arrive as numbers or numeric strings.
func (c *Client) Constants(ctx context.Context) (domain.ConstantsFeed, error) {
	var payload struct {
		Confirmed      any    `json:"ผู้ติดเชื้อ"`
		UnderTreatment any    `json:"กำลังรักษา"`
		Deaths         any    `json:"เสียชีวิต"`
		Recovered      any    `json:"หายแล้ว"`
		AddedToday     any    `json:"เพิ่มวันนี้"`
		AddedDate      string `json:"เพิ่มวันที่"`
	}
	if err := c.get(ctx, "constants", &payload); err != nil {
		return domain.ConstantsFeed{}, err
	}

	addedDate, err := domain.ParseTimestamp(payload.AddedDate)
	if err != nil {
		return domain.ConstantsFeed{}, fmt.Errorf("constants: %w", err)
	}

	return domain.ConstantsFeed{
		Confirmed:      coerceCount(payload.Confirmed),
		UnderTreatment: coerceCount(payload.UnderTreatment),
		Deaths:         coerceCount(payload.Deaths),
		Recovered:      coerceCount(payload.Recovered),
		AddedToday:     coerceCount(payload.AddedToday),
		AddedDate:      addedDate,
	}, nil
}

// Cases fetches the individual case list. Free-text type and status fields
// are returned verbatim; taxonomy mapping is the caller's concern.
func (c *Client) Cases(ctx context.Context) ([]domain.CaseRow, error) {
	var payload []struct {
		DetectedAt    string `json:"detectedAt"`
		Origin        string `json:"origin"`
		TreatAt       string `json:"treatAt"`
		Status        string `json:"status"`
		Job           string `json:"job"`
		Gender        string `json:"gender"`
		Age           any    `json:"age"`
		Type          string `json:"type"`
		Meta          string `json:"meta"`
		StatementDate string `json:"statementDate"`
		RecoveredDate string `json:"recoveredDate"`
	}
	if err := c.get(ctx, "cases", &payload); err != nil {
		return nil, err
	}

	rows := make([]domain.CaseRow, 0, len(payload))
	for i, p := range payload {
		statementDate, err := domain.ParseTimestamp(p.StatementDate)
		if err != nil {
			return nil, fmt.Errorf("case %d: statement date: %w", i, err)
		}

		var recoveredDate time.Time
		if p.RecoveredDate != "" {
			recoveredDate, err = domain.ParseTimestamp(p.RecoveredDate)
			if err != nil {
				return nil, fmt.Errorf("case %d: recovered date: %w", i, err)
			}
		}

		rows = append(rows, domain.CaseRow{
			DetectedAt:    p.DetectedAt,
			Origin:        p.Origin,
			TreatAt:       p.TreatAt,
			Status:        p.Status,
			Job:           p.Job,
			Gender:        p.Gender,
			Age:           coerceCount(p.Age),
			Type:          p.Type,
			Meta:          p.Meta,
			StatementDate: statementDate,
			RecoveredDate: recoveredDate,
		})
	}

	c.logger.Debug("fetched case list", "rows", len(rows))
	return rows, nil
}

// World fetches the per-country statistics list and global totals.
func (c *Client) World(ctx context.Context) (domain.WorldFeed, error) {
	var payload struct {
		Statistics []struct {
			Name      string `json:"name"`
			Alpha2    string `json:"alpha2"`
			Confirmed any    `json:"confirmed"`
			Deaths    any    `json:"deaths"`
			Recovered any    `json:"recovered"`
			Travel    string `json:"travel"`
		} `json:"statistics"`
		TotalConfirmed any    `json:"totalConfirmed"`
		TotalDeaths    any    `json:"totalDeaths"`
		TotalRecovered any    `json:"totalRecovered"`
		LastUpdated    string `json:"lastUpdated"`
	}
	if err := c.get(ctx, "world", &payload); err != nil {
		return domain.WorldFeed{}, err
	}

	lastUpdated, err := domain.ParseTimestamp(payload.LastUpdated)
	if err != nil {
		return domain.WorldFeed{}, fmt.Errorf("world: %w", err)
	}

	feed := domain.WorldFeed{
		TotalConfirmed: coerceCount(payload.TotalConfirmed),
		TotalDeaths:    coerceCount(payload.TotalDeaths),
		TotalRecovered: coerceCount(payload.TotalRecovered),
		LastUpdated:    lastUpdated,
		Rows:           make([]domain.WorldRow, 0, len(payload.Statistics)),
	}
	for _, s := range payload.Statistics {
		feed.Rows = append(feed.Rows, domain.WorldRow{
			Name:      s.Name,
			Alpha2:    s.Alpha2,
			Confirmed: coerceCount(s.Confirmed),
			Deaths:    coerceCount(s.Deaths),
			Recovered: coerceCount(s.Recovered),
			Travel:    s.Travel,
		})
	}

	return feed, nil
}

// Trend fetches the date-keyed history mapping. Keys are YYYY-MM-DD strings;
// it is used as a lookup table by the retrospective aggregator, which skips
// dates with no entry.
func (c *Client) Trend(ctx context.Context) (map[string]domain.TrendPoint, error) {
	var payload map[string]struct {
		Confirmed any `json:"confirmed"`
		Deaths    any `json:"deaths"`
		Recovered any `json:"recovered"`
	}
	if err := c.get(ctx, "trend", &payload); err != nil {
		return nil, err
	}

	trend := make(map[string]domain.TrendPoint, len(payload))
	for date, p := range payload {
		trend[date] = domain.TrendPoint{
			Confirmed: coerceCount(p.Confirmed),
			Deaths:    coerceCount(p.Deaths),
			Recovered: coerceCount(p.Recovered),
		}
	}
	return trend, nil
}

// coerceCount converts a JSON value that may be a number, numeric string,
// or absent into an integer count. Anything else is zero.
func coerceCount(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return int(t)
	case string:
		return domain.ParseCount(t)
	default:
		return 0
	}
}
