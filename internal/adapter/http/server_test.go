package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
	"github.com/couchcryptid/covid-feed-etl/internal/observability"
	"github.com/couchcryptid/covid-feed-etl/internal/report"
)

var testNow = time.Date(2020, 3, 16, 12, 0, 0, 0, time.UTC)

type stubDaily struct {
	lastDate time.Time
}

func (s *stubDaily) DailyReports(_ context.Context, date time.Time) ([]domain.RawCounts, error) {
	s.lastDate = date
	return []domain.RawCounts{
		{ScopeName: "Thailand", ScopeCode: "TH", Confirmed: 100, Deaths: 1, Recovered: 50, AsOf: date},
	}, nil
}

type stubWorkpoint struct{ err error }

func (s *stubWorkpoint) Constants(context.Context) (domain.ConstantsFeed, error) {
	return domain.ConstantsFeed{Confirmed: 114, AddedDate: testNow.Add(-time.Hour)}, s.err
}

func (s *stubWorkpoint) Cases(context.Context) ([]domain.CaseRow, error) {
	return nil, s.err
}

func (s *stubWorkpoint) World(context.Context) (domain.WorldFeed, error) {
	return domain.WorldFeed{LastUpdated: testNow}, s.err
}

func (s *stubWorkpoint) Trend(context.Context) (map[string]domain.TrendPoint, error) {
	return map[string]domain.TrendPoint{}, s.err
}

type stubSheets struct{ err error }

func (s *stubSheets) Cases(context.Context) ([]domain.ZoneCaseRow, error)     { return nil, s.err }
func (s *stubSheets) Hospitals(context.Context) ([]domain.HospitalRow, error) { return nil, s.err }
func (s *stubSheets) SafeZones(context.Context) ([]domain.SafeZoneRow, error) { return nil, s.err }
func (s *stubSheets) Summary(context.Context) ([]domain.ProvinceRow, error)   { return nil, s.err }

type stubDashboard struct{ err error }

func (s *stubDashboard) Snapshot(context.Context) (domain.DashboardSnapshot, error) {
	return domain.DashboardSnapshot{AsOf: testNow}, s.err
}

type stubFacilities struct{ err error }

func (s *stubFacilities) Facilities(context.Context) ([]domain.FacilityRow, error) {
	return nil, s.err
}

type serverFixture struct {
	server *Server
	daily  *stubDaily
	sheets *stubSheets
}

func newFixture(t *testing.T) *serverFixture {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })

	daily := &stubDaily{}
	sheets := &stubSheets{}
	svc := report.New(
		daily,
		&stubWorkpoint{},
		sheets,
		&stubDashboard{},
		&stubFacilities{},
		"TH",
		slog.New(slog.DiscardHandler),
		observability.NewMetricsForTesting(),
	)
	return &serverFixture{
		server: NewServer(":0", svc, slog.New(slog.DiscardHandler)),
		daily:  daily,
		sheets: sheets,
	}
}

func (f *serverFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	f.server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Not ready until an upstream fetch succeeds.
	rec = f.get(t, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f.get(t, "/api/v1/total")
	rec = f.get(t, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTotalEndpoint(t *testing.T) {
	f := newFixture(t)

	t.Run("defaults to yesterday", func(t *testing.T) {
		rec := f.get(t, "/api/v1/total")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		yesterday := testNow.AddDate(0, 0, -1)
		assert.True(t, f.daily.lastDate.Equal(yesterday))

		var record domain.CaseRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
		assert.Equal(t, 100, record.Confirmed)
		assert.Equal(t, 49, record.Active)
	})

	t.Run("honors an explicit date", func(t *testing.T) {
		rec := f.get(t, "/api/v1/total?date=2020-03-10")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, f.daily.lastDate.Equal(time.Date(2020, 3, 10, 0, 0, 0, 0, time.Local)))
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		rec := f.get(t, "/api/v1/total?date=10-03-2020")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCountryEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/v1/country/th")
	require.Equal(t, http.StatusOK, rec.Code)

	var record domain.CaseRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "TH", record.ScopeCode)

	// No rows resolve to FR, which surfaces as an upstream failure.
	rec = f.get(t, "/api/v1/country/fr")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRetroactEndpoint(t *testing.T) {
	f := newFixture(t)

	t.Run("default window", func(t *testing.T) {
		rec := f.get(t, "/api/v1/retroact")
		require.Equal(t, http.StatusOK, rec.Code)

		var series map[string]domain.CaseRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
		assert.Len(t, series, 6)
	})

	t.Run("explicit window", func(t *testing.T) {
		rec := f.get(t, "/api/v1/country/th/retroact?days=3")
		require.Equal(t, http.StatusOK, rec.Code)

		var series map[string]domain.CaseRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
		assert.Len(t, series, 3)
	})

	t.Run("rejects a non-positive window", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/v1/retroact?days=0").Code)
		assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/v1/retroact?days=soon").Code)
	})
}

func TestUnconfiguredSourceMapsTo503(t *testing.T) {
	f := newFixture(t)
	f.sheets.err = fmt.Errorf("cases feed: %w", domain.ErrSourceNotConfigured)

	rec := f.get(t, "/api/v1/zones")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpstreamFailureMapsTo502(t *testing.T) {
	f := newFixture(t)
	f.sheets.err = errors.New("connection reset")

	rec := f.get(t, "/api/v1/hospitals")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "connection reset")
}
