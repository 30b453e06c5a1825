package domain

import "time"

// CaseRecord is the normalized output shape shared by every source: one
// record per geographic scope (country, province, or global) at a point in
// time. Field names and types are the downstream contract; consumers must
// not need to know which source produced a record.
type CaseRecord struct {
	ScopeName string `json:"scope_name"`
	// ScopeCode is the resolved ISO alpha-2 code, empty when unresolvable.
	ScopeCode string `json:"scope_code,omitempty"`
	Province  string `json:"province,omitempty"`

	Confirmed int `json:"confirmed"`
	Deaths    int `json:"deaths"`
	Recovered int `json:"recovered"`
	// Active is confirmed - recovered - deaths, derived once in Normalize.
	// Negative values are possible when upstream data is inconsistent.
	Active int `json:"active"`

	ConfirmedColor string `json:"confirmed_color"`
	DeathsColor    string `json:"deaths_color"`
	RecoveredColor string `json:"recovered_color"`
	ActiveColor    string `json:"active_color"`

	AsOf      time.Time `json:"as_of"`
	Freshness string    `json:"retrieved_freshness"`
}

// DaySeries maps a short weekday label ("Mon".."Sun") to an aggregate record.
// Label uniqueness is only guaranteed for windows of at most 7 days; longer
// windows overwrite colliding labels as-is.
type DaySeries map[string]CaseRecord

// CaseDetail is one reported case from the workpoint case list, with the
// free-text transmission type and status mapped through the upstream
// taxonomy. Records are built fresh per request and never persisted.
type CaseDetail struct {
	DetectedAt string `json:"detected_at"`
	Origin     string `json:"origin"`
	TreatAt    string `json:"treat_at"`
	Job        string `json:"job"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Meta       string `json:"meta,omitempty"`

	Status        CaseStatus           `json:"status"`
	StatusLabel   string               `json:"status_label"`
	StatusColor   string               `json:"status_color"`
	Category      TransmissionCategory `json:"category"`
	CategoryLabel string               `json:"category_label"`
	CategoryColor string               `json:"category_color"`

	StatementDate time.Time  `json:"statement_date"`
	RecoveredDate *time.Time `json:"recovered_date,omitempty"`
}

// ConstantsReport is the workpoint current-totals snapshot. Under-treatment
// is reported directly by this source rather than derived.
type ConstantsReport struct {
	Confirmed      int       `json:"confirmed"`
	UnderTreatment int       `json:"under_treatment"`
	Deaths         int       `json:"deaths"`
	Recovered      int       `json:"recovered"`
	AddedToday     int       `json:"add_today_count"`
	AddedDate      time.Time `json:"add_date"`
	AsOf           time.Time `json:"as_of"`
	Freshness      string    `json:"retrieved_freshness"`
}

// WorldStat is one country row of the world report: a normalized record plus
// the source-provided flag hint and travel advisory.
type WorldStat struct {
	CaseRecord

	Flag        string         `json:"flag"`
	Travel      TravelAdvisory `json:"travel"`
	TravelLabel string         `json:"travel_label"`
	TravelColor string         `json:"travel_color"`
}

// WorldReport is the workpoint world feed: global totals plus per-country
// statistics. AddedToday is the delta against the CSSE global total of the
// day before yesterday.
type WorldReport struct {
	CaseRecord

	AddedToday int         `json:"add_today_count"`
	Statistics []WorldStat `json:"statistics"`
}

// ZoneCase is one risk-zone row from the cases_thai spreadsheet feed.
type ZoneCase struct {
	Status      string    `json:"status"`
	StatusColor string    `json:"status_color"`
	Date        time.Time `json:"date"`
	DateDiff    string    `json:"date_diff_str"`
	Place       string    `json:"place"`
	Province    string    `json:"province"`
	PlaceEN     string    `json:"place_name_eng"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Note        string    `json:"note,omitempty"`
	Source      string    `json:"source,omitempty"`
	AsOf        time.Time `json:"as_of"`
	Freshness   string    `json:"retrieved_freshness"`
}

// Hospital is one row of the hospitals spreadsheet feed.
type Hospital struct {
	Name      string    `json:"name"`
	NameEN    string    `json:"name_eng"`
	Phone     string    `json:"telephone"`
	Price     string    `json:"price"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AsOf      time.Time `json:"as_of"`
	Freshness string    `json:"retrieved_freshness"`
}

// SafeZone is one sterilized-area row from the safe_zone spreadsheet feed.
type SafeZone struct {
	Name        string    `json:"name"`
	Action      string    `json:"action"`
	ActionColor string    `json:"action_color"`
	Date        time.Time `json:"date"`
	DateDiff    string    `json:"date_diff_str"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Source      string    `json:"source,omitempty"`
	AsOf        time.Time `json:"as_of"`
	Freshness   string    `json:"retrieved_freshness"`
}

// ProvinceSummary is one infected-by-province row from the thai_summary feed.
type ProvinceSummary struct {
	Province      string    `json:"province"`
	ProvinceEN    string    `json:"province_eng"`
	Infected      int       `json:"infected"`
	InfectedColor string    `json:"infected_color"`
	AsOf          time.Time `json:"as_of"`
	Freshness     string    `json:"retrieved_freshness"`
}

// Facility is one hospital or lab location from the health-map feed.
type Facility struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Source    string  `json:"source,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DashboardReport is the scraped DDC dashboard: the normalized headline
// totals plus the PUI, case-management, and traveler-screening counters
// that only this source reports.
type DashboardReport struct {
	CaseRecord

	Name   string `json:"name"`
	Severe int    `json:"severed"`

	AddedToday int `json:"add_today_count"`
	PUITotal   int `json:"watch_out_collectors"`
	NewPUI     int `json:"new_watch_out"`

	ManagedAdmit       int `json:"case_management_admit"`
	ManagedDischarged  int `json:"case_management_discharged"`
	ManagedObservation int `json:"case_management_observation"`

	Airport       int `json:"airport"`
	SeaPort       int `json:"sea_port"`
	GroundPort    int `json:"ground_port"`
	ChaengWattana int `json:"at_chaeng_wattana"`

	DateTimeText string `json:"date_time_str"`
	Source       string `json:"source"`
	SourceURL    string `json:"data_source"`
}
