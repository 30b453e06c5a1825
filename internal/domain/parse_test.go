package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	t.Run("plain integer", func(t *testing.T) {
		assert.Equal(t, 42, ParseCount("42"))
	})

	t.Run("thousands separators stripped", func(t *testing.T) {
		assert.Equal(t, 1234, ParseCount("1,234"))
		assert.Equal(t, 1234567, ParseCount("1,234,567"))
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, 7, ParseCount("  7 "))
	})

	t.Run("decimal truncates", func(t *testing.T) {
		assert.Equal(t, 1, ParseCount("1.5"))
	})

	t.Run("empty is zero", func(t *testing.T) {
		assert.Equal(t, 0, ParseCount(""))
	})

	t.Run("non-numeric is zero", func(t *testing.T) {
		assert.Equal(t, 0, ParseCount("no data"))
	})

	t.Run("negative passes through", func(t *testing.T) {
		assert.Equal(t, -3, ParseCount("-3"))
	})
}

func TestParseDecimal(t *testing.T) {
	assert.Equal(t, 13.7563, ParseDecimal("13.7563"))
	assert.Equal(t, 0.0, ParseDecimal(""))
	assert.Equal(t, 0.0, ParseDecimal("n/a"))
}

func TestParseTimestamp(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		got, err := ParseTimestamp("2020-03-15T10:00:00Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2020, 3, 15, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("ISO without zone", func(t *testing.T) {
		got, err := ParseTimestamp("2020-03-15T10:00:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2020, 3, 15, 10, 0, 0, 0, time.Local)))
	})

	t.Run("space separated", func(t *testing.T) {
		got, err := ParseTimestamp("2020-03-15 10:00:00")
		require.NoError(t, err)
		assert.Equal(t, 2020, got.Year())
		assert.Equal(t, time.March, got.Month())
	})

	t.Run("CSSE short style", func(t *testing.T) {
		got, err := ParseTimestamp("3/15/20 22:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2020, 3, 15, 22, 0, 0, 0, time.Local)))
	})

	t.Run("bare date", func(t *testing.T) {
		got, err := ParseTimestamp("2020-03-15")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2020, 3, 15, 0, 0, 0, 0, time.Local)))
	})

	t.Run("empty errors", func(t *testing.T) {
		_, err := ParseTimestamp("")
		require.Error(t, err)
	})

	t.Run("garbage errors", func(t *testing.T) {
		_, err := ParseTimestamp("sometime soon")
		require.Error(t, err)
	})
}

func TestParseDateStrict(t *testing.T) {
	t.Run("month day year", func(t *testing.T) {
		got, err := ParseDateStrict("3/15/2020")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2020, 3, 15, 0, 0, 0, 0, time.Local)))
	})

	t.Run("ISO rejected", func(t *testing.T) {
		_, err := ParseDateStrict("2020-03-15T10:00:00Z")
		require.Error(t, err)
	})
}
