package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCount coerces numeric-looking text to a non-failing integer count.
// Thousands separators and surrounding whitespace are stripped; decimal
// values are truncated toward zero. Empty or non-numeric input yields 0;
// a missing count field must never abort a whole aggregation.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseDecimal parses a string as float64, returning 0 on failure.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// timestampLayouts covers the formats observed across the upstream sources:
// ISO with and without zone, the CSSE "3/15/20 22:00" style, and bare dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// ParseTimestamp parses a source timestamp permissively, trying each known
// layout in order, and returns the result in the process's local zone.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.In(time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseDateStrict parses the spreadsheet feed's "%m/%d/%Y" date format.
// Callers fall back to [ParseTimestamp] when this fails.
func ParseDateStrict(s string) (time.Time, error) {
	t, err := time.ParseInLocation("1/2/2006", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("strict date: %w", err)
	}
	return t, nil
}
