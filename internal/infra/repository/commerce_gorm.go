package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-platform/internal/domain/commerce"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type CommerceGormRepository struct {
	db *gorm.DB
}

func NewCommerceGormRepository(db *gorm.DB) *CommerceGormRepository {
	return &CommerceGormRepository{db: db}
}

var _ domain.Repository = (*CommerceGormRepository)(nil)

func (r *CommerceGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CommerceGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Salon / Catalog
// --------------------------------------------------

func (r *CommerceGormRepository) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *CommerceGormRepository) GetSettings(ctx context.Context, salonID uint) (*models.SalonSettings, error) {
	return findSettings(ctx, r.db, salonID)
}

func (r *CommerceGormRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CommerceGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (r *CommerceGormRepository) FindActiveCart(ctx context.Context, userID, salonID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND salon_id = ? AND status = ?", userID, salonID, models.CartStatusActive).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CommerceGormRepository) FindAnyActiveCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		Order("updated_at DESC").
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CommerceGormRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *CommerceGormRepository) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CommerceGormRepository) ListCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *CommerceGormRepository) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", item.CartID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *CommerceGormRepository) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CommerceGormRepository) DeleteCartItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

func (r *CommerceGormRepository) ClaimCart(ctx context.Context, cartID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND status = ?", cartID, models.CartStatusActive).
		Update("status", models.CartStatusCheckedOut)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CommerceGormRepository) DecrementStock(ctx context.Context, productID uint, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CommerceGormRepository) RedeemPoints(ctx context.Context, userID, salonID uint, points int64) (bool, error) {
	return redeemPoints(ctx, r.db, userID, salonID, points)
}

func (r *CommerceGormRepository) AwardPoints(ctx context.Context, userID, salonID uint, points int64, at time.Time) error {
	return awardPoints(ctx, r.db, userID, salonID, points, at)
}

func (r *CommerceGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CommerceGormRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(o).Error
}

func (r *CommerceGormRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
