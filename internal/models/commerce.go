package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CartStatusActive     = "active"
	CartStatusCheckedOut = "checked_out"
	CartStatusAbandoned  = "abandoned"

	ItemTypeProduct = "product"
	ItemTypeService = "service"
)

type Cart struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// At most one active cart per (user, salon).
	UserID  uint   `gorm:"not null;index:idx_cart_active,unique,where:status = 'active'" json:"user_id"`
	SalonID uint   `gorm:"not null;index:idx_cart_active,unique,where:status = 'active'" json:"salon_id"`
	Status  string `gorm:"size:20;not null;default:'active'" json:"status"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CartID    uint            `gorm:"not null;index" json:"cart_id"`
	ProductID *uint           `json:"product_id"`
	ServiceID *uint           `json:"service_id"`
	Type      string          `gorm:"size:10;not null" json:"type"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"

	OrderPaymentPaid     = "paid"
	OrderStatusCompleted = "completed"
)

var PaymentMethods = []string{"card", "paypal", "cash", "wallet"}

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID         uint            `gorm:"not null;index" json:"user_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod  string          `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus  string          `gorm:"size:20;not null" json:"payment_status"`
	TransactionRef string          `gorm:"size:50;uniqueIndex" json:"transaction_ref"`

	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID    uint `gorm:"not null;index" json:"user_id"`
	SalonID   uint `gorm:"not null;index" json:"salon_id"`
	CartID    uint `gorm:"not null" json:"cart_id"`
	PaymentID uint `gorm:"not null" json:"payment_id"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PointsRedeemed int64           `gorm:"not null;default:0" json:"points_redeemed"`
	PointsEarned   int64           `gorm:"not null;default:0" json:"points_earned"`

	PaymentStatus string `gorm:"size:20;not null" json:"payment_status"`
	OrderStatus   string `gorm:"size:20;not null" json:"order_status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID *uint           `json:"product_id"`
	ServiceID *uint           `json:"service_id"`
	Type      string          `gorm:"size:10;not null" json:"type"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
