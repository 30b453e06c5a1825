// Package domain models COVID-19 case data aggregated from four independently
// shaped upstream sources.
//
// # Data Sources
//
// CSSE daily reports:
//
//	CSV snapshots published per calendar day at
//	csse_covid_19_daily_reports/<MM-DD-YYYY>.csv. Columns:
//	province, country, last update, confirmed, deaths, recovered.
//	The first row is a header and is skipped. The country name is free text
//	and must be resolved to an ISO alpha-2 code; some rows carry the country
//	in the province column, so resolution falls back to it.
//
// Workpoint feed:
//
//	A JSON endpoint family: "constants" (current Thai totals, keyed by Thai
//	field names), "cases" (individual case rows with a free-text transmission
//	type and status drawn from a fixed upstream taxonomy), "world"
//	(per-country statistics plus global totals and a travel advisory per
//	country), and "trend" (a map of YYYY-MM-DD date strings to same-day
//	snapshots, used for retrospective series).
//
// Spreadsheet feeds:
//
//	Google-Sheets-backed JSON where every field value is wrapped one level
//	deep as {"$t": value}. Four variants share the shape and differ only in
//	which fields are present and which status taxonomy applies. Dates use
//	"%m/%d/%Y" but malformed rows fall back to permissive parsing.
//
// Scraped dashboard:
//
//	The Department of Disease Control HTML page, read through fixed
//	CSS-class selectors over two parallel stat tables. Label cells become
//	snake_case keys with fixed per-index prefixes; numeric cells carry
//	thousands separators that are stripped before conversion. The whole
//	fetch+parse sequence is retried exactly once on any failure.
//
// # Derived Metrics
//
// Active cases are never reported upstream. They are derived in exactly one
// place, [Normalize], as confirmed - recovered - deaths, and are deliberately
// not clamped: a negative value surfaces inconsistent upstream data instead
// of hiding it.
//
// Freshness strings are rendered from the record's as-of time against the
// injected clock at read time, never at fetch time, so repeated reads of the
// same record age correctly.
//
// # Upstream Taxonomy
//
// Free-text transmission types, case statuses, travel advisories, and
// spreadsheet statuses are matched against ordered prefix tables whose match
// keys are the verbatim upstream strings. Unrecognized values map to an
// explicit "no data" placeholder rather than being dropped.
package domain
