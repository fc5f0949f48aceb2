package loyalty

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

// Balance is one salon's loyalty record joined with the salon name.
type Balance struct {
	SalonID        uint       `json:"salon_id"`
	SalonName      string     `json:"salon_name"`
	Points         int64      `json:"points"`
	LifetimePoints int64      `json:"lifetime_points"`
	LastEarned     *time.Time `json:"last_earned"`
}

type Repository interface {
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)
	GetSettings(ctx context.Context, salonID uint) (*models.SalonSettings, error)

	ListForUser(ctx context.Context, userID uint) ([]Balance, error)
	// Get returns a zero balance when the user has no record at the salon.
	Get(ctx context.Context, userID, salonID uint) (*models.Loyalty, error)
	// LoyalCustomers lists users whose lifetime points at the salon
	// exceed threshold.
	LoyalCustomers(ctx context.Context, salonID uint, threshold int64) ([]uint, error)
}
