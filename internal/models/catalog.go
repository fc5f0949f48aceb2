package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var ProductCategories = []string{"Hair", "Skin", "Nails", "Other"}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID     uint            `gorm:"not null;index" json:"salon_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Category    string          `gorm:"size:50" json:"category"`
	Duration    int             `gorm:"not null" json:"duration"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID     uint            `gorm:"not null;index" json:"salon_id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Category    string          `gorm:"size:20;not null;default:'Other'" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	SKU         string          `gorm:"size:50" json:"sku"`
	IsActive    bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
