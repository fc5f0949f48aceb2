package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentListDTO struct {
	ID            uint            `json:"id"`
	SalonID       uint            `json:"salon_id"`
	SalonName     string          `json:"salon_name"`
	ServiceID     uint            `json:"service_id"`
	ServiceName   string          `json:"service_name"`
	UserID        uint            `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	StaffID       *uint           `json:"staff_id"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
}
