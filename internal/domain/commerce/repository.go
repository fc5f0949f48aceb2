package commerce

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)
	GetSettings(ctx context.Context, salonID uint) (*models.SalonSettings, error)

	// -------- Catalog --------
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Cart --------
	FindActiveCart(ctx context.Context, userID, salonID uint) (*models.Cart, error)
	FindAnyActiveCart(ctx context.Context, userID uint) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCart(ctx context.Context, id uint) (*models.Cart, error)
	ListCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, item *models.CartItem) error
	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uint) error

	// -------- Checkout (conditional writes) --------
	// ClaimCart flips active → checked_out; false if it was not active.
	ClaimCart(ctx context.Context, cartID uint) (bool, error)
	// DecrementStock is false when stock is below qty.
	DecrementStock(ctx context.Context, productID uint, qty int) (bool, error)
	// RedeemPoints is false when the balance is below points.
	RedeemPoints(ctx context.Context, userID, salonID uint, points int64) (bool, error)
	AwardPoints(ctx context.Context, userID, salonID uint, points int64, at time.Time) error

	CreatePayment(ctx context.Context, p *models.Payment) error
	CreateOrder(ctx context.Context, o *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error

	Transaction(ctx context.Context, fn func(repo Repository) error) error
}
