package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type LoyaltyGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyGormRepository(db *gorm.DB) *LoyaltyGormRepository {
	return &LoyaltyGormRepository{db: db}
}

var _ domain.Repository = (*LoyaltyGormRepository)(nil)

func (r *LoyaltyGormRepository) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *LoyaltyGormRepository) GetSettings(ctx context.Context, salonID uint) (*models.SalonSettings, error) {
	return findSettings(ctx, r.db, salonID)
}

func (r *LoyaltyGormRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Balance, error) {
	var out []domain.Balance
	err := r.db.WithContext(ctx).
		Table("loyalty AS l").
		Select(`
			l.salon_id,
			s.name AS salon_name,
			l.points,
			l.lifetime_points,
			l.last_earned
		`).
		Joins("JOIN salons s ON s.id = l.salon_id").
		Where("l.user_id = ?", userID).
		Order("l.points DESC, l.salon_id ASC").
		Scan(&out).Error
	return out, err
}

func (r *LoyaltyGormRepository) Get(ctx context.Context, userID, salonID uint) (*models.Loyalty, error) {
	var l models.Loyalty
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND salon_id = ?", userID, salonID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Loyalty{UserID: userID, SalonID: salonID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoyaltyGormRepository) LoyalCustomers(ctx context.Context, salonID uint, threshold int64) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Where("salon_id = ? AND lifetime_points > ?", salonID, threshold).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
