package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID    uint  `gorm:"not null;index" json:"user_id"`
	SalonID   uint  `gorm:"not null;index" json:"salon_id"`
	StaffID   *uint `gorm:"index" json:"staff_id"`
	ServiceID uint  `gorm:"not null" json:"service_id"`

	ScheduledTime time.Time       `gorm:"not null;index" json:"scheduled_time"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status        string          `gorm:"size:20;not null;default:'booked'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is the per-line snapshot written at booking time.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint            `gorm:"not null;index" json:"appointment_id"`
	ServiceID     uint            `gorm:"not null" json:"service_id"`
	Duration      int             `json:"duration"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
