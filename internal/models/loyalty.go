package models

import "time"

type Loyalty struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"not null;uniqueIndex:idx_loyalty_user_salon" json:"user_id"`
	SalonID uint `gorm:"not null;uniqueIndex:idx_loyalty_user_salon" json:"salon_id"`

	Points         int64      `gorm:"not null;default:0" json:"points"`
	LifetimePoints int64      `gorm:"not null;default:0" json:"lifetime_points"`
	LastEarned     *time.Time `json:"last_earned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Loyalty) TableName() string { return "loyalty" }
