package domain

import "time"

// RawCounts is the common intermediate every adapter reduces count rows to:
// independently sourced integers plus the source-claimed as-of time, before
// any derived metrics. Adapters coerce and resolve; [Normalize] derives.
type RawCounts struct {
	ScopeName string
	ScopeCode string
	Province  string
	Confirmed int
	Deaths    int
	Recovered int
	AsOf      time.Time
}

// ConstantsFeed is the parsed workpoint constants payload.
type ConstantsFeed struct {
	Confirmed      int
	UnderTreatment int
	Deaths         int
	Recovered      int
	AddedToday     int
	AddedDate      time.Time
}

// CaseRow is one raw workpoint case-list entry with counts coerced and
// dates parsed, but the free-text type and status not yet mapped.
type CaseRow struct {
	DetectedAt    string
	Origin        string
	TreatAt       string
	Status        string
	Job           string
	Gender        string
	Age           int
	Type          string
	Meta          string
	StatementDate time.Time
	RecoveredDate time.Time // zero when the case has not recovered
}

// WorldRow is one raw per-country row of the workpoint world feed. The
// alpha-2 code is supplied by the source, so no resolution is needed.
type WorldRow struct {
	Name      string
	Alpha2    string
	Confirmed int
	Deaths    int
	Recovered int
	Travel    string
}

// WorldFeed is the parsed workpoint world payload.
type WorldFeed struct {
	TotalConfirmed int
	TotalDeaths    int
	TotalRecovered int
	LastUpdated    time.Time
	Rows           []WorldRow
}

// TrendPoint is one dated snapshot from the workpoint trend mapping.
type TrendPoint struct {
	Confirmed int
	Deaths    int
	Recovered int
}

// ZoneCaseRow is one raw cases_thai spreadsheet entry.
type ZoneCaseRow struct {
	Status    string
	Date      time.Time
	Place     string
	Province  string
	PlaceEN   string
	Latitude  float64
	Longitude float64
	Note      string
	Source    string
	Updated   time.Time
}

// HospitalRow is one raw hospitals spreadsheet entry.
type HospitalRow struct {
	Name      string
	NameEN    string
	Phone     string
	Price     string
	Latitude  float64
	Longitude float64
	Updated   time.Time
}

// SafeZoneRow is one raw safe_zone spreadsheet entry.
type SafeZoneRow struct {
	Area      string
	Action    string
	Date      time.Time
	Latitude  float64
	Longitude float64
	Source    string
	Updated   time.Time
}

// ProvinceRow is one raw thai_summary spreadsheet entry.
type ProvinceRow struct {
	Province   string
	ProvinceEN string
	Infected   int
	Updated    time.Time
}

// FacilityRow is one raw feature from the health-map feed.
type FacilityRow struct {
	Name      string
	Type      string
	Source    string
	Latitude  float64
	Longitude float64
}

// DashboardSnapshot is the scraped DDC dashboard reduced to its two
// label→count tables plus the page's own timestamp.
type DashboardSnapshot struct {
	Primary  map[string]int
	Traveler map[string]int
	DateText string
	AsOf     time.Time
}
