package domain

import (
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Normalize derives the shared metric set from raw counts. It is the single
// place active cases are computed; no adapter or caller may re-derive them.
// Active is deliberately not clamped at zero: inconsistent upstream data
// must surface, not be hidden.
func Normalize(raw RawCounts) CaseRecord {
	active := raw.Confirmed - raw.Recovered - raw.Deaths
	return CaseRecord{
		ScopeName: raw.ScopeName,
		ScopeCode: raw.ScopeCode,
		Province:  raw.Province,

		Confirmed: raw.Confirmed,
		Deaths:    raw.Deaths,
		Recovered: raw.Recovered,
		Active:    active,

		ConfirmedColor: SeverityColor(raw.Confirmed),
		DeathsColor:    SeverityColor(raw.Deaths),
		RecoveredColor: SeverityColor(raw.Recovered),
		ActiveColor:    SeverityColor(active),

		AsOf:      raw.AsOf,
		Freshness: Freshness(raw.AsOf),
	}
}

// Freshness renders a human-relative age for an as-of time against the
// injected clock. It is recomputed on every read, never cached, so a record
// re-read later reports a larger age.
func Freshness(asOf time.Time) string {
	if asOf.IsZero() {
		return NoDataLabel
	}
	return humanize.RelTime(asOf, clock.Now(), "ago", "from now")
}
