package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint  `gorm:"not null;uniqueIndex" json:"appointment_id"`
	UserID        uint  `gorm:"not null;index" json:"user_id"`
	SalonID       uint  `gorm:"not null;index" json:"salon_id"`
	StaffID       *uint `json:"staff_id"`

	Rating      int        `gorm:"not null" json:"rating"`
	Comment     string     `gorm:"type:text" json:"comment"`
	Response    string     `gorm:"type:text" json:"response"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	NotificationReminder     = "reminder"
	NotificationPromotion    = "promotion"
	NotificationStatusUpdate = "status_update"
	NotificationDiscount     = "discount"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Type         string     `gorm:"size:20;not null" json:"type"`
	Title        string     `gorm:"size:150" json:"title"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	IsRead       bool       `gorm:"not null;default:false" json:"is_read"`
	SentAt       time.Time  `gorm:"not null" json:"sent_at"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

type Promotion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID         uint      `gorm:"not null;index" json:"salon_id"`
	Title           string    `gorm:"size:150;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DiscountPercent int       `gorm:"not null" json:"discount_percent"`
	ValidFrom       time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil      time.Time `gorm:"not null" json:"valid_until"`
	IsActive        bool      `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}
