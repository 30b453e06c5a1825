// Package ddc scrapes the Department of Disease Control dashboard: an HTML
// page whose numeric widgets live in two parallel tables addressed by fixed
// CSS-class selectors. It is the least reliable source, so the whole
// fetch+parse sequence gets exactly one automatic retry.
package ddc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
	"github.com/couchcryptid/covid-feed-etl/internal/observability"
)

// dashboardZone is the fixed UTC offset the page's timestamp is published in.
const dashboardZone = "+07:00"

// Client scrapes the dashboard page.
type Client struct {
	url     string
	http    *resty.Client
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a dashboard scraper for the configured page URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url:     url,
		http:    resty.New().SetTimeout(timeout),
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot fetches and parses the dashboard. Any failure, whether transport,
// malformed markup, missing cells, or an unparseable timestamp, triggers one
// transparent retry of the entire sequence; a second failure propagates.
func (c *Client) Snapshot(ctx context.Context) (domain.DashboardSnapshot, error) {
	if c.url == "" {
		return domain.DashboardSnapshot{}, fmt.Errorf("dashboard: %w", domain.ErrSourceNotConfigured)
	}

	snap, err := c.scrape(ctx)
	if err != nil {
		c.metrics.ScrapeRetries.Inc()
		c.logger.Warn("dashboard scrape failed, retrying once", "error", err)
		snap, err = c.scrape(ctx)
		if err != nil {
			return domain.DashboardSnapshot{}, fmt.Errorf("fetch dashboard: %w", err)
		}
	}
	return snap, nil
}

func (c *Client) scrape(ctx context.Context) (domain.DashboardSnapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}
	if resp.IsError() {
		return domain.DashboardSnapshot{}, fmt.Errorf("status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("parse markup: %w", err)
	}

	dateText := headerDate(doc)
	asOf, err := time.Parse("2 January 2006 At 15:04 -07:00", dateText+" "+dashboardZone)
	if err != nil {
		return domain.DashboardSnapshot{}, fmt.Errorf("parse dashboard timestamp %q: %w", dateText, err)
	}

	primary := cellTable(doc, "td.popup_subhead", "td.popup_num", 10, primaryKey)
	traveler := cellTable(doc, "td.popup_subhead2", "td.popup_num2", -1, func(_ int, label string) string {
		return snakeKey(label)
	})

	return domain.DashboardSnapshot{
		Primary:  primary,
		Traveler: traveler,
		DateText: dateText,
		AsOf:     asOf.In(time.Local),
	}, nil
}

// headerDate joins the distinct texts of the date header cells in document
// order; the page splits the timestamp across adjacent cells.
func headerDate(doc *goquery.Document) string {
	var parts []string
	seen := map[string]bool{}
	doc.Find("td.popup_hh").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		parts = append(parts, text)
	})
	return strings.Join(parts, " ")
}

// cellTable pairs each label cell with the numeric cell at the same ordinal
// position. Missing numeric cells coerce to zero rather than failing the
// scrape. A limit of -1 takes every label.
func cellTable(doc *goquery.Document, labelSel, numSel string, limit int, key func(int, string) string) map[string]int {
	var keys []string
	doc.Find(labelSel).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit >= 0 && i >= limit {
			return false
		}
		keys = append(keys, key(i, strings.TrimSpace(s.Text())))
		return true
	})

	var values []int
	doc.Find(numSel).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= len(keys) {
			return false
		}
		values = append(values, domain.ParseCount(s.Text()))
		return true
	})

	table := make(map[string]int, len(keys))
	for i, k := range keys {
		if i < len(values) {
			table[k] = values[i]
		} else {
			table[k] = 0
		}
	}
	return table
}

// primaryKey normalizes a primary-table label with the fixed per-index
// prefixes: the first five cells are confirmed-case figures, index 5 is the
// PUI total, indices 7-9 are case-management figures, everything else is
// taken verbatim.
func primaryKey(i int, label string) string {
	switch {
	case i <= 4:
		return snakeKey("Confirmed case " + label)
	case i == 5:
		return snakeKey("PUI " + label)
	case i >= 7 && i <= 9:
		return snakeKey("Case Management " + label)
	default:
		return snakeKey(label)
	}
}

// snakeKey lowercases a label and collapses every non-alphanumeric run into
// a single underscore.
func snakeKey(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
