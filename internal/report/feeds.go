package report

import (
	"context"
	"strings"
	"time"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

// Constants returns the workpoint current-totals snapshot with freshness
// attached at read time.
func (s *Service) Constants(ctx context.Context) (domain.ConstantsReport, error) {
	start := time.Now()
	feed, err := s.workpoint.Constants(ctx)
	s.track("workpoint", start, err)
	if err != nil {
		return domain.ConstantsReport{}, err
	}

	return domain.ConstantsReport{
		Confirmed:      feed.Confirmed,
		UnderTreatment: feed.UnderTreatment,
		Deaths:         feed.Deaths,
		Recovered:      feed.Recovered,
		AddedToday:     feed.AddedToday,
		AddedDate:      feed.AddedDate,
		AsOf:           feed.AddedDate,
		Freshness:      domain.Freshness(feed.AddedDate),
	}, nil
}

// Cases returns the workpoint case list with the free-text transmission
// type and status mapped through the upstream taxonomy. Absent demographic
// fields carry the explicit no-data placeholder.
func (s *Service) Cases(ctx context.Context) ([]domain.CaseDetail, error) {
	start := time.Now()
	rows, err := s.workpoint.Cases(ctx)
	s.track("workpoint", start, err)
	if err != nil {
		return nil, err
	}

	details := make([]domain.CaseDetail, 0, len(rows))
	for _, row := range rows {
		category, categoryLabel, categoryColor := domain.MapTransmissionType(row.Type, row.Meta)
		status, statusLabel, statusColor := domain.MapCaseStatus(row.Status)

		detail := domain.CaseDetail{
			DetectedAt: domain.OrDefault(row.DetectedAt),
			Origin:     domain.OrDefault(row.Origin),
			TreatAt:    domain.OrDefault(row.TreatAt),
			Job:        domain.OrDefault(row.Job),
			Gender:     domain.OrDefault(row.Gender),
			Age:        row.Age,
			Meta:       row.Meta,

			Status:        status,
			StatusLabel:   statusLabel,
			StatusColor:   statusColor,
			Category:      category,
			CategoryLabel: categoryLabel,
			CategoryColor: categoryColor,

			StatementDate: row.StatementDate,
		}
		if !row.RecoveredDate.IsZero() {
			recovered := row.RecoveredDate
			detail.RecoveredDate = &recovered
		}
		details = append(details, detail)
	}
	return details, nil
}

// World returns the per-country statistics and global totals. The today
// delta is computed against the CSSE global total of the day before
// yesterday, the newest complete snapshot the CSV source can serve.
func (s *Service) World(ctx context.Context) (domain.WorldReport, error) {
	start := time.Now()
	feed, err := s.workpoint.World(ctx)
	s.track("workpoint", start, err)
	if err != nil {
		return domain.WorldReport{}, err
	}

	prior, err := s.Total(ctx, domain.Now().AddDate(0, 0, -2))
	if err != nil {
		return domain.WorldReport{}, err
	}

	report := domain.WorldReport{
		CaseRecord: s.normalize(domain.RawCounts{
			ScopeName: "Global",
			Confirmed: feed.TotalConfirmed,
			Deaths:    feed.TotalDeaths,
			Recovered: feed.TotalRecovered,
			AsOf:      feed.LastUpdated,
		}),
		AddedToday: feed.TotalConfirmed - prior.Confirmed,
		Statistics: make([]domain.WorldStat, 0, len(feed.Rows)),
	}

	for _, row := range feed.Rows {
		advisory, advisoryLabel, advisoryColor := domain.MapTravelAdvisory(row.Travel)
		report.Statistics = append(report.Statistics, domain.WorldStat{
			CaseRecord: s.normalize(domain.RawCounts{
				ScopeName: row.Name,
				ScopeCode: strings.ToUpper(row.Alpha2),
				Confirmed: row.Confirmed,
				Deaths:    row.Deaths,
				Recovered: row.Recovered,
				AsOf:      feed.LastUpdated,
			}),
			Flag:        "/" + strings.ToLower(row.Alpha2) + ".png",
			Travel:      advisory,
			TravelLabel: advisoryLabel,
			TravelColor: advisoryColor,
		})
	}
	return report, nil
}

// CaseZones returns the cases_thai spreadsheet rows with confirmation
// status colored and freshness attached.
func (s *Service) CaseZones(ctx context.Context) ([]domain.ZoneCase, error) {
	start := time.Now()
	rows, err := s.sheets.Cases(ctx)
	s.track("sheets", start, err)
	if err != nil {
		return nil, err
	}

	zones := make([]domain.ZoneCase, 0, len(rows))
	for _, row := range rows {
		status, color := domain.MapConfirmationStatus(row.Status)
		zones = append(zones, domain.ZoneCase{
			Status:      status,
			StatusColor: color,
			Date:        row.Date,
			DateDiff:    domain.Freshness(row.Date),
			Place:       row.Place,
			Province:    row.Province,
			PlaceEN:     row.PlaceEN,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			Note:        row.Note,
			Source:      row.Source,
			AsOf:        row.Updated,
			Freshness:   domain.Freshness(row.Updated),
		})
	}
	return zones, nil
}

// Hospitals returns the hospitals spreadsheet rows. A missing price carries
// the no-data placeholder.
func (s *Service) Hospitals(ctx context.Context) ([]domain.Hospital, error) {
	start := time.Now()
	rows, err := s.sheets.Hospitals(ctx)
	s.track("sheets", start, err)
	if err != nil {
		return nil, err
	}

	hospitals := make([]domain.Hospital, 0, len(rows))
	for _, row := range rows {
		hospitals = append(hospitals, domain.Hospital{
			Name:      row.Name,
			NameEN:    row.NameEN,
			Phone:     row.Phone,
			Price:     domain.OrDefault(row.Price),
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			AsOf:      row.Updated,
			Freshness: domain.Freshness(row.Updated),
		})
	}
	return hospitals, nil
}

// SafeZones returns the safe_zone spreadsheet rows with the sterilization
// action colored.
func (s *Service) SafeZones(ctx context.Context) ([]domain.SafeZone, error) {
	start := time.Now()
	rows, err := s.sheets.SafeZones(ctx)
	s.track("sheets", start, err)
	if err != nil {
		return nil, err
	}

	zones := make([]domain.SafeZone, 0, len(rows))
	for _, row := range rows {
		action, color := domain.MapSterilizationAction(row.Action)
		zones = append(zones, domain.SafeZone{
			Name:        row.Area,
			Action:      action,
			ActionColor: color,
			Date:        row.Date,
			DateDiff:    domain.Freshness(row.Date),
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			Source:      row.Source,
			AsOf:        row.Updated,
			Freshness:   domain.Freshness(row.Updated),
		})
	}
	return zones, nil
}

// ProvinceSummaries returns the thai_summary rows with infected counts
// bucketed into severity colors.
func (s *Service) ProvinceSummaries(ctx context.Context) ([]domain.ProvinceSummary, error) {
	start := time.Now()
	rows, err := s.sheets.Summary(ctx)
	s.track("sheets", start, err)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ProvinceSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ProvinceSummary{
			Province:      row.Province,
			ProvinceEN:    row.ProvinceEN,
			Infected:      row.Infected,
			InfectedColor: domain.SeverityColor(row.Infected),
			AsOf:          row.Updated,
			Freshness:     domain.Freshness(row.Updated),
		})
	}
	return summaries, nil
}

// Facilities returns the hospital/lab locations.
func (s *Service) Facilities(ctx context.Context) ([]domain.Facility, error) {
	start := time.Now()
	rows, err := s.facilities.Facilities(ctx)
	s.track("healthmap", start, err)
	if err != nil {
		return nil, err
	}

	facilities := make([]domain.Facility, 0, len(rows))
	for _, row := range rows {
		facilities = append(facilities, domain.Facility{
			Name:      row.Name,
			Type:      row.Type,
			Source:    row.Source,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		})
	}
	return facilities, nil
}

// Dashboard names the primary-table keys the scraper produces.
const (
	keyConfirmedTotal      = "confirmed_case_total"
	keyConfirmedDeath      = "confirmed_case_death"
	keyConfirmedDischarged = "confirmed_case_discharged"
	keyConfirmedSevere     = "confirmed_case_severe"
	keyConfirmedNew        = "confirmed_case_new_case"
	keyPUITotal            = "pui_total"
	keyNewPUI              = "new_pui"
	keyManageAdmit         = "case_management_admit"
	keyManageDischarged    = "case_management_discharged"
	keyManageObservation   = "case_management_observation"
)

// Dashboard returns the scraped DDC snapshot normalized into the shared
// record shape plus the dashboard-only counters.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardReport, error) {
	start := time.Now()
	snap, err := s.dashboard.Snapshot(ctx)
	s.track("ddc", start, err)
	if err != nil {
		return domain.DashboardReport{}, err
	}

	return domain.DashboardReport{
		CaseRecord: s.normalize(domain.RawCounts{
			ScopeName: "Thailand",
			ScopeCode: "TH",
			Confirmed: snap.Primary[keyConfirmedTotal],
			Deaths:    snap.Primary[keyConfirmedDeath],
			Recovered: snap.Primary[keyConfirmedDischarged],
			AsOf:      snap.AsOf,
		}),
		Name:   "Corona Virus Disease (COVID-19)",
		Severe: snap.Primary[keyConfirmedSevere],

		AddedToday: snap.Primary[keyConfirmedNew],
		PUITotal:   snap.Primary[keyPUITotal],
		NewPUI:     snap.Primary[keyNewPUI],

		ManagedAdmit:       snap.Primary[keyManageAdmit],
		ManagedDischarged:  snap.Primary[keyManageDischarged],
		ManagedObservation: snap.Primary[keyManageObservation],

		Airport:       snap.Traveler["airport"],
		SeaPort:       snap.Traveler["sea_port"],
		GroundPort:    snap.Traveler["ground_port"],
		ChaengWattana: snap.Traveler["at_chaeng_wattana"],

		DateTimeText: snap.DateText,
		Source:       "กรมควบคุมโรค Department of Disease Control",
		SourceURL:    "https://ddc.moph.go.th/viralpneumonia",
	}, nil
}
