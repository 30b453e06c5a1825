package csse

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

const dailyCSV = `Province/State,Country/Region,Last Update,Confirmed,Deaths,Recovered
,Thailand,2020-03-15T10:00:00Z,100,1,50
Hubei,Mainland China,2020-03-15T10:00:00Z,"67,794","3,085","52,960"
,Gotham City,2020-03-15T10:00:00Z,5,,
`

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDailyReports(t *testing.T) {
	reportDate := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("parses rows and skips the header", func(t *testing.T) {
		var gotPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(dailyCSV))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		rows, err := client.DailyReports(context.Background(), reportDate)

		require.NoError(t, err)
		assert.Equal(t, "/csse_covid_19_daily_reports/03-15-2020.csv", gotPath)
		require.Len(t, rows, 3)

		assert.Equal(t, "Thailand", rows[0].ScopeName)
		assert.Equal(t, "TH", rows[0].ScopeCode)
		assert.Equal(t, 100, rows[0].Confirmed)
		assert.Equal(t, 1, rows[0].Deaths)
		assert.Equal(t, 50, rows[0].Recovered)
	})

	t.Run("strips thousands separators", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(dailyCSV))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		rows, err := client.DailyReports(context.Background(), reportDate)

		require.NoError(t, err)
		assert.Equal(t, 67794, rows[1].Confirmed)
		assert.Equal(t, 3085, rows[1].Deaths)
		assert.Equal(t, 52960, rows[1].Recovered)
		assert.Equal(t, "CN", rows[1].ScopeCode)
		assert.Equal(t, "Hubei", rows[1].Province)
	})

	t.Run("missing counts coerce to zero and unknown country stays unresolved", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(dailyCSV))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		rows, err := client.DailyReports(context.Background(), reportDate)

		require.NoError(t, err)
		assert.Equal(t, 0, rows[2].Deaths)
		assert.Equal(t, 0, rows[2].Recovered)
		assert.Empty(t, rows[2].ScopeCode)
	})

	t.Run("normalization of a fetched row derives active", func(t *testing.T) {
		domain.SetClock(clockwork.NewFakeClockAt(time.Date(2020, 3, 16, 12, 0, 0, 0, time.UTC)))
		defer domain.SetClock(nil)

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(dailyCSV))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		rows, err := client.DailyReports(context.Background(), reportDate)
		require.NoError(t, err)

		record := domain.Normalize(rows[0])
		assert.Equal(t, 100, record.Confirmed)
		assert.Equal(t, 1, record.Deaths)
		assert.Equal(t, 50, record.Recovered)
		assert.Equal(t, 49, record.Active)
		assert.Equal(t, "TH", record.ScopeCode)
	})

	t.Run("http error propagates", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		_, err := client.DailyReports(context.Background(), reportDate)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("unparseable last-update propagates", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("header\n,Thailand,not a date,1,0,0\n"))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, testLogger())
		_, err := client.DailyReports(context.Background(), reportDate)
		require.Error(t, err)
	})
}
