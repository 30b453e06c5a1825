package workpoint

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer serves each resource path from a fixed body.
func feedServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testClient(ts *httptest.Server) *Client {
	return NewClient(ts.URL, 5*time.Second, slog.New(slog.DiscardHandler))
}

func TestConstants(t *testing.T) {
	t.Run("coerces mixed number and string counts", func(t *testing.T) {
		ts := feedServer(t, map[string]string{
			"/constants.json": `{
				"ผู้ติดเชื้อ": 114,
				"กำลังรักษา": "77",
				"เสียชีวิต": 1,
				"หายแล้ว": "36",
				"เพิ่มวันนี้": 32,
				"เพิ่มวันที่": "2020-03-15 18:00:00"
			}`,
		})

		feed, err := testClient(ts).Constants(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 114, feed.Confirmed)
		assert.Equal(t, 77, feed.UnderTreatment)
		assert.Equal(t, 1, feed.Deaths)
		assert.Equal(t, 36, feed.Recovered)
		assert.Equal(t, 32, feed.AddedToday)
		assert.Equal(t, time.Date(2020, 3, 15, 18, 0, 0, 0, time.Local), feed.AddedDate)
	})

	t.Run("unparseable added date fails", func(t *testing.T) {
		ts := feedServer(t, map[string]string{
			"/constants.json": `{"เพิ่มวันที่": "whenever"}`,
		})

		_, err := testClient(ts).Constants(context.Background())
		require.Error(t, err)
	})
}

func TestCases(t *testing.T) {
	t.Run("parses rows with optional recovered date", func(t *testing.T) {
		ts := feedServer(t, map[string]string{
			"/cases.json": `[
				{
					"detectedAt": "โรงพยาบาลราชวิถี",
					"origin": "ไทย",
					"treatAt": "สถาบันบำราศนราดูร",
					"status": "รักษา",
					"job": "พนักงานขับรถ",
					"gender": "ชาย",
					"age": "42",
					"type": "สัมผัสผู้ป่วยก่อนหน้า",
					"meta": "",
					"statementDate": "2020-03-14 00:00:00",
					"recoveredDate": "2020-03-20 00:00:00"
				},
				{
					"status": "รักษา",
					"age": 28,
					"statementDate": "2020-03-15 00:00:00"
				}
			]`,
		})

		rows, err := testClient(ts).Cases(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "โรงพยาบาลราชวิถี", rows[0].DetectedAt)
		assert.Equal(t, 42, rows[0].Age)
		assert.Equal(t, "สัมผัสผู้ป่วยก่อนหน้า", rows[0].Type)
		assert.False(t, rows[0].RecoveredDate.IsZero())

		assert.Equal(t, 28, rows[1].Age)
		assert.True(t, rows[1].RecoveredDate.IsZero())
	})

	t.Run("missing statement date fails", func(t *testing.T) {
		ts := feedServer(t, map[string]string{
			"/cases.json": `[{"status": "รักษา"}]`,
		})

		_, err := testClient(ts).Cases(context.Background())
		require.Error(t, err)
	})
}

func TestWorld(t *testing.T) {
	ts := feedServer(t, map[string]string{
		"/world.json": `{
			"statistics": [
				{"name": "China", "alpha2": "CN", "confirmed": 80860, "deaths": "3213", "recovered": 67749, "travel": "2"},
				{"name": "Thailand", "alpha2": "TH", "confirmed": "114", "deaths": 1, "recovered": 36, "travel": ""}
			],
			"totalConfirmed": "156400",
			"totalDeaths": 5833,
			"totalRecovered": 73968,
			"lastUpdated": "2020-03-15T20:30:00"
		}`,
	})

	feed, err := testClient(ts).World(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 156400, feed.TotalConfirmed)
	assert.Equal(t, 5833, feed.TotalDeaths)
	assert.Equal(t, 73968, feed.TotalRecovered)
	assert.Equal(t, time.Date(2020, 3, 15, 20, 30, 0, 0, time.Local), feed.LastUpdated)

	require.Len(t, feed.Rows, 2)
	assert.Equal(t, "CN", feed.Rows[0].Alpha2)
	assert.Equal(t, 3213, feed.Rows[0].Deaths)
	assert.Equal(t, "2", feed.Rows[0].Travel)
	assert.Equal(t, 114, feed.Rows[1].Confirmed)
}

func TestTrend(t *testing.T) {
	ts := feedServer(t, map[string]string{
		"/trend.json": `{
			"2020-03-14": {"confirmed": 82, "deaths": 1, "recovered": "35"},
			"2020-03-15": {"confirmed": "114", "deaths": 1, "recovered": 36}
		}`,
	})

	trend, err := testClient(ts).Trend(context.Background())
	require.NoError(t, err)
	require.Len(t, trend, 2)

	assert.Equal(t, 82, trend["2020-03-14"].Confirmed)
	assert.Equal(t, 35, trend["2020-03-14"].Recovered)
	assert.Equal(t, 114, trend["2020-03-15"].Confirmed)
}

func TestUpstreamError(t *testing.T) {
	ts := feedServer(t, map[string]string{})

	_, err := testClient(ts).Trend(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
