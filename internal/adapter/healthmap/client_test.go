package healthmap

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
)

const healthmapJS = `var covid19 = {"features": [
	{"properties": {"NAME": "โรงพยาบาลราชวิถี", "TYPE": "hospital", "source": "moph", "Lat": 13.765, "Long": "100.536"}},
	{"properties": {"NAME": "Lab Center", "TYPE": "lab", "source": "", "Lat": "not a number"}}
]}`

func TestFacilities(t *testing.T) {
	t.Run("strips the assignment prefix and coerces coordinates", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(healthmapJS))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, slog.New(slog.DiscardHandler))
		rows, err := client.Facilities(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "โรงพยาบาลราชวิถี", rows[0].Name)
		assert.Equal(t, "hospital", rows[0].Type)
		assert.InDelta(t, 13.765, rows[0].Latitude, 0.0001)
		assert.InDelta(t, 100.536, rows[0].Longitude, 0.0001)

		assert.Equal(t, "lab", rows[1].Type)
		assert.Zero(t, rows[1].Latitude)
		assert.Zero(t, rows[1].Longitude)
	})

	t.Run("plain json without the prefix decodes as well", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"features": []}`))
		}))
		defer ts.Close()

		client := NewClient(ts.URL, 5*time.Second, slog.New(slog.DiscardHandler))
		rows, err := client.Facilities(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("empty url is not configured", func(t *testing.T) {
		client := NewClient("", 5*time.Second, slog.New(slog.DiscardHandler))
		_, err := client.Facilities(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
	})
}
