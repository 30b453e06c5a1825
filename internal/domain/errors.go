package domain

import "errors"

// ErrSourceNotConfigured marks an adapter whose upstream URL was not set.
// Optional sources (spreadsheet feeds, dashboard, health map) surface this
// instead of attempting a request.
var ErrSourceNotConfigured = errors.New("source not configured")
