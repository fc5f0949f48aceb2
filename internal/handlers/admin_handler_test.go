package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/testutil"
)

func TestPeakHours(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2030, 1, 2, hour, 15, 0, 0, time.UTC)
	}
	times := []time.Time{at(10), at(10), at(10), at(14), at(14), at(9), at(18), at(11), at(12)}

	got := peakHours(times, 2)

	assert.Equal(t, []hourCount{
		{Hour: 10, Appointments: 3},
		{Hour: 14, Appointments: 2},
	}, got)
	assert.Empty(t, peakHours(nil, 5))
}

func TestMonthlyRevenue(t *testing.T) {
	pay := func(amount string, month time.Month, day int) models.Payment {
		return models.Payment{
			Amount:    testutil.Money(amount),
			CreatedAt: time.Date(2030, month, day, 12, 0, 0, 0, time.UTC),
		}
	}

	got := monthlyRevenue([]models.Payment{
		pay("10.50", time.March, 3),
		pay("20", time.January, 9),
		pay("4.50", time.March, 28),
	})

	assert.Equal(t, []monthRevenue{
		{Month: "2030-01", Revenue: "20.00"},
		{Month: "2030-03", Revenue: "15.00"},
	}, got)
}

func TestPercent(t *testing.T) {
	assert.Zero(t, percent(3, 0))
	assert.Equal(t, 33.33, percent(1, 3))
	assert.Equal(t, 50.0, percent(1, 2))
}
