package domain

import "strings"

// NoDataLabel is the explicit placeholder for absent or unrecognized
// free-text values ("no data" in Thai). Unrecognized values are mapped to
// it rather than dropped.
const NoDataLabel = "ไม่มีข้อมูล"

// defaultTagColor is the color paired with unrecognized or absent values.
const defaultTagColor = "#000"

// TransmissionCategory classifies how a case was exposed.
type TransmissionCategory string

const (
	CategoryRiskCountryTravel TransmissionCategory = "risk_country_travel"
	CategoryTravelerContact   TransmissionCategory = "traveler_contact"
	CategoryKnownSpreader     TransmissionCategory = "known_spreader"
	CategoryUnknownSpreader   TransmissionCategory = "unknown_spreader"
	CategoryNoData            TransmissionCategory = "no_data"
)

// CaseStatus is the current state of a reported case.
type CaseStatus string

const (
	StatusUnderTreatment CaseStatus = "under_treatment"
	StatusRecovered      CaseStatus = "recovered"
	StatusDeceased       CaseStatus = "deceased"
	StatusNoData         CaseStatus = "no_data"
)

// TravelAdvisory is the 3-level advisory attached to world-report rows.
type TravelAdvisory string

const (
	AdvisoryNone       TravelAdvisory = "no_advisory"
	AdvisoryCaution    TravelAdvisory = "caution"
	AdvisoryProhibited TravelAdvisory = "prohibited"
)

// tagRule matches an upstream free-text value by prefix. The prefixes are
// the verbatim upstream taxonomy and must not be rephrased: they are the
// wire contract with the feed, not arbitrary strings.
type tagRule struct {
	prefix string
	code   string
	label  string
	color  string
}

// match evaluates rules top-to-bottom, preserving the upstream precedence.
func match(rules []tagRule, raw string) (tagRule, bool) {
	for _, r := range rules {
		if strings.HasPrefix(raw, r.prefix) {
			return r, true
		}
	}
	return tagRule{}, false
}

var transmissionRules = []tagRule{
	{"1 - เดินทางมาจากประเทศกลุ่มเสี่ยง", string(CategoryRiskCountryTravel), "เดินทางมาจากประเทศกลุ่มเสี่ยง", "#FE205D"},
	{"2 - ใกล้ชิดผู้เดินทางมาจากประเทศกลุ่มเสี่ยง", string(CategoryTravelerContact), "ใกล้ชิดผู้เดินทางมาจาก ประเทศกลุ่มเสี่ยง", "#FE2099"},
	{"3 - ทราบผู้ป่วยแพร่เชื้อ", string(CategoryKnownSpreader), "ทราบผู้ป่วยแพร่เชื้อ", "#5920FE"},
	{"4 - ไม่ทราบผู้ป่วยแพร่เชื้อ", string(CategoryUnknownSpreader), "ไม่ทราบผู้ป่วยแพร่เชื้อ", "#AD20FE"},
}

// MapTransmissionType maps a case's free-text type to its category, display
// label, and color. Category 1 labels name the traveled-from country when
// the row's meta field carries one.
func MapTransmissionType(raw, meta string) (TransmissionCategory, string, string) {
	r, ok := match(transmissionRules, raw)
	if !ok {
		return CategoryNoData, NoDataLabel, defaultTagColor
	}
	label := r.label
	if r.code == string(CategoryRiskCountryTravel) {
		origin := meta
		if origin == "" {
			origin = "กลุ่มเสี่ยง"
		}
		label = "เดินทางมาจากประเทศ " + origin
	}
	return TransmissionCategory(r.code), label, r.color
}

var statusRules = []tagRule{
	{"รักษา", string(StatusUnderTreatment), "กำลังรักษา", "#A2F202"},
	{"หาย", string(StatusRecovered), "หายแล้ว", "#01E35E"},
	{"เสียชีวิต", string(StatusDeceased), "เสียชีวิต", "#FC5E71"},
}

// MapCaseStatus maps a case's free-text status to its enum, display label,
// and color. Absent or unrecognized statuses keep their original text when
// present, tagged with the default color.
func MapCaseStatus(raw string) (CaseStatus, string, string) {
	if r, ok := match(statusRules, raw); ok {
		return CaseStatus(r.code), r.label, r.color
	}
	if raw == "" {
		return StatusNoData, NoDataLabel, defaultTagColor
	}
	return StatusNoData, raw, defaultTagColor
}

var travelRules = []tagRule{
	{"มีความเสี่ยง", string(AdvisoryCaution), "มีความเสี่ยง", "#FED023"},
	{"ห้ามเดินทาง", string(AdvisoryProhibited), "ห้ามเดินทาง", "#FE205D"},
}

// MapTravelAdvisory maps a world-report travel note to the 3-level scale,
// defaulting to no-advisory when the note is absent or unrecognized.
func MapTravelAdvisory(raw string) (TravelAdvisory, string, string) {
	if r, ok := match(travelRules, raw); ok {
		return TravelAdvisory(r.code), r.label, r.color
	}
	if raw == "" {
		return AdvisoryNone, "ยังไม่มีความเสี่ยง", defaultTagColor
	}
	return AdvisoryNone, raw, defaultTagColor
}

var confirmationRules = []tagRule{
	{"ยืนยัน", "confirmed", "ยืนยัน", "#00EC64"},
	{"ต้องสงสัย", "suspected", "ต้องสงสัย", "#9412F5"},
	{"ไม่มีข้อมูลผู้ติดเชื้อพื้นที่", "no_area_data", "ไม่มีข้อมูลผู้ติดเชื้อพื้นที่", "#129FF5"},
	{"ไม่ระบุพื้นที่", "no_area", "ไม่ระบุพื้นที่", "#F55E12"},
}

// MapConfirmationStatus colors a cases_thai spreadsheet status. Unrecognized
// statuses keep their text with the default color.
func MapConfirmationStatus(raw string) (string, string) {
	if r, ok := match(confirmationRules, raw); ok {
		return r.label, r.color
	}
	if raw == "" {
		return NoDataLabel, defaultTagColor
	}
	return raw, defaultTagColor
}

var sterilizationRules = []tagRule{
	{"ฆ่าเชื้อ", "sterilized", "ฆ่าเชื้อ", "#00EC64"},
	{"ต้องสงสัย", "suspected", "ต้องสงสัย", "#9412F5"},
	{"ปิด", "closed", "ปิด", "#F51257"},
}

// MapSterilizationAction colors a safe_zone spreadsheet action. Unrecognized
// actions keep their text with the default color.
func MapSterilizationAction(raw string) (string, string) {
	if r, ok := match(sterilizationRules, raw); ok {
		return r.label, r.color
	}
	if raw == "" {
		return NoDataLabel, defaultTagColor
	}
	return raw, defaultTagColor
}

// OrDefault substitutes the no-data placeholder for empty free-text fields.
func OrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return NoDataLabel
	}
	return s
}
