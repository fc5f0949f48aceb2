package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

const DefaultPointsPerDollar = 1

// LoyalCustomerThreshold is the lifetime balance above which customers
// receive promotion announcements.
const LoyalCustomerThreshold = 100

var DefaultRedemptionRate = decimal.RequireFromString("0.01")

type Rates struct {
	PointsPerDollar int
	RedemptionRate  decimal.Decimal
}

// RatesFor returns the salon's rates, or the defaults when the salon has
// no settings row.
func RatesFor(settings *models.SalonSettings) Rates {
	if settings == nil {
		return Rates{
			PointsPerDollar: DefaultPointsPerDollar,
			RedemptionRate:  DefaultRedemptionRate,
		}
	}
	return Rates{
		PointsPerDollar: settings.LoyaltyPointsPerDollar,
		RedemptionRate:  settings.LoyaltyRedemptionRate,
	}
}

// PointsFor is floor(amount × pointsPerDollar). Non-positive inputs earn
// nothing.
func PointsFor(amount decimal.Decimal, pointsPerDollar int) int64 {
	if pointsPerDollar <= 0 || !amount.IsPositive() {
		return 0
	}
	return amount.Mul(decimal.NewFromInt(int64(pointsPerDollar))).Floor().IntPart()
}

// Discount is points × rate rounded to cents.
func Discount(points int64, rate decimal.Decimal) decimal.Decimal {
	if points <= 0 || !rate.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(points).Mul(rate).Round(2)
}

func ValidateRedemption(points int64) error {
	if points < 0 {
		return httperr.Validation("invalid_redeem_points", "redeem_points must not be negative.")
	}
	return nil
}

const CodeInsufficientPoints = "insufficient_loyalty_points"

func ErrInsufficientPoints() error {
	return httperr.InsufficientBalance(CodeInsufficientPoints, "Not enough loyalty points.")
}
