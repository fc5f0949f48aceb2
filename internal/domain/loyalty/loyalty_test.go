package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPointsFor(t *testing.T) {
	tests := []struct {
		amount string
		ppd    int
		want   int64
	}{
		{"50.00", 2, 100},
		{"29.00", 1, 29},
		{"29.99", 1, 29},
		{"0.99", 1, 0},
		{"10.50", 3, 31},
		{"100.00", 0, 0},
		{"0", 5, 0},
		{"-5", 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsFor(d(tt.amount), tt.ppd), "%s × %d", tt.amount, tt.ppd)
	}
}

func TestDiscount(t *testing.T) {
	assert.True(t, Discount(100, d("0.01")).Equal(d("1.00")))
	assert.True(t, Discount(0, d("0.01")).IsZero())
	assert.True(t, Discount(333, d("0.015")).Equal(d("5.00")), "4.995 rounds half up")
	assert.True(t, Discount(10, decimal.Zero).IsZero())
}

func TestRatesFor(t *testing.T) {
	r := RatesFor(nil)
	assert.Equal(t, DefaultPointsPerDollar, r.PointsPerDollar)
	assert.True(t, r.RedemptionRate.Equal(DefaultRedemptionRate))

	r = RatesFor(&models.SalonSettings{LoyaltyPointsPerDollar: 2, LoyaltyRedemptionRate: d("0.05")})
	assert.Equal(t, 2, r.PointsPerDollar)
	assert.True(t, r.RedemptionRate.Equal(d("0.05")))
}

func TestValidateRedemption(t *testing.T) {
	assert.NoError(t, ValidateRedemption(0))
	assert.Error(t, ValidateRedemption(-1))
}
