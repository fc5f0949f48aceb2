package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SalonStatusPending = "pending"
	SalonStatusActive  = "active"
	SalonStatusBlocked = "blocked"
)

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:255" json:"address"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SalonSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID            uint   `gorm:"uniqueIndex;not null" json:"salon_id"`
	Timezone           string `gorm:"size:50;not null;default:'UTC'" json:"timezone"`
	CancellationPolicy string `gorm:"type:text" json:"cancellation_policy"`

	TaxRate                decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	LoyaltyPointsPerDollar int             `gorm:"not null" json:"loyalty_points_per_dollar"`
	LoyaltyRedemptionRate  decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"loyalty_redemption_rate"`
	AutoCompleteAfter      int             `gorm:"default:24" json:"auto_complete_after"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (SalonSettings) TableName() string { return "salon_settings" }
