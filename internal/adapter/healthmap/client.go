// Package healthmap fetches the hospital/lab locations feed: a GeoJSON-like
// payload served as a JavaScript assignment, so the "var covid19 = " prefix
// must be stripped before decoding.
package healthmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

const payloadPrefix = "var covid19 = "

// Client fetches the facility locations feed.
type Client struct {
	url    string
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a health-map client for the configured feed URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		http:   resty.New().SetTimeout(timeout),
		logger: logger,
	}
}

// Facilities fetches every hospital and lab feature. Coordinates arrive as
// numbers or numeric strings and coerce to zero when malformed.
func (c *Client) Facilities(ctx context.Context) ([]domain.FacilityRow, error) {
	if c.url == "" {
		return nil, fmt.Errorf("health map: %w", domain.ErrSourceNotConfigured)
	}

	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch health map: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch health map: status %d", resp.StatusCode())
	}

	body := strings.TrimSpace(string(resp.Body()))
	body = strings.TrimPrefix(body, payloadPrefix)

	var payload struct {
		Features []struct {
			Properties struct {
				Name   string `json:"NAME"`
				Type   string `json:"TYPE"`
				Source string `json:"source"`
				Lat    any    `json:"Lat"`
				Long   any    `json:"Long"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("decode health map: %w", err)
	}

	rows := make([]domain.FacilityRow, 0, len(payload.Features))
	for _, f := range payload.Features {
		rows = append(rows, domain.FacilityRow{
			Name:      f.Properties.Name,
			Type:      f.Properties.Type,
			Source:    f.Properties.Source,
			Latitude:  coordinate(f.Properties.Lat),
			Longitude: coordinate(f.Properties.Long),
		})
	}

	c.logger.Debug("fetched health map", "facilities", len(rows))
	return rows, nil
}

func coordinate(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return domain.ParseDecimal(t)
	default:
		return 0
	}
}
