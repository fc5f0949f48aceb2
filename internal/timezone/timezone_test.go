package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("with offset", func(t *testing.T) {
		got, err := ParseTimestamp("2024-05-01T10:00:00-03:00", "Europe/Paris")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC), got)
	})

	t.Run("local in salon zone", func(t *testing.T) {
		got, err := ParseTimestamp("2024-01-15T09:30", "America/New_York")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("unknown zone falls back to UTC", func(t *testing.T) {
		got, err := ParseTimestamp("2024-01-15T09:30:00", "Nowhere/Land")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseTimestamp("tomorrow at noon", "UTC")
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2024-03-10", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = DayBounds("10/03/2024", "UTC")
	assert.Error(t, err)
}
