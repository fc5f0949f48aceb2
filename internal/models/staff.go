package models

import "time"

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID        uint   `gorm:"not null;uniqueIndex:idx_staff_salon_user" json:"salon_id"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_staff_salon_user" json:"user_id"`
	Role           string `gorm:"size:50;not null;default:'barber'" json:"role"`
	Specialization string `gorm:"size:100" json:"specialization"`
	IsActive       bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

type StaffAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID     uint   `gorm:"not null;index" json:"staff_id"`
	DayOfWeek   string `gorm:"size:10;not null" json:"day_of_week"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`
}

func (Staff) TableName() string { return "staff" }

func (StaffAvailability) TableName() string { return "staff_availability" }
