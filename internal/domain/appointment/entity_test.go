package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

func booked() *models.Appointment {
	svc := &models.Service{ID: 3, Price: decimal.RequireFromString("45.50"), Duration: 30}
	return New(1, 2, svc, nil, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), "")
}

func TestNewFreezesPrice(t *testing.T) {
	ap := booked()
	assert.Equal(t, string(StatusBooked), ap.Status)
	assert.True(t, ap.Price.Equal(decimal.RequireFromString("45.50")))
}

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := booked()
	changed, err := Cancel(ap, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCancelled), ap.Status)

	changed, err = Cancel(ap, now)
	require.NoError(t, err)
	assert.False(t, changed, "second cancel is a no-op")

	done := booked()
	_, err = Complete(done, now)
	require.NoError(t, err)
	_, err = Cancel(done, now)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}

func TestComplete(t *testing.T) {
	now := time.Now()

	ap := booked()
	changed, err := Complete(ap, now)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, ap.CompletedAt)

	changed, err = Complete(ap, now)
	require.NoError(t, err)
	assert.False(t, changed)

	cancelled := booked()
	_, err = Cancel(cancelled, now)
	require.NoError(t, err)
	_, err = Complete(cancelled, now)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}

func TestRescheduleKeepsPrice(t *testing.T) {
	ap := booked()
	price := ap.Price

	later := ap.ScheduledTime.Add(48 * time.Hour)
	require.NoError(t, Reschedule(ap, later))
	assert.Equal(t, later, ap.ScheduledTime)
	assert.True(t, ap.Price.Equal(price))

	_, err := Cancel(ap, time.Now())
	require.NoError(t, err)
	assert.Error(t, Reschedule(ap, later))
}

func TestCompletionMessage(t *testing.T) {
	assert.Equal(t,
		"Your appointment is complete! You earned 100 loyalty points.",
		CompletionMessage(100),
	)
}
