package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

// Helpers shared by the per-domain repositories. Each takes the handle
// it must run on so callers inside a transaction pass the tx.

func findSettings(ctx context.Context, db *gorm.DB, salonID uint) (*models.SalonSettings, error) {
	var s models.SalonSettings
	err := db.WithContext(ctx).Where("salon_id = ?", salonID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// awardPoints creates the (user, salon) row if missing and increments it.
// Both statements are safe under concurrency: the insert is a no-op on
// conflict and the update is a single atomic increment.
func awardPoints(ctx context.Context, db *gorm.DB, userID, salonID uint, points int64, at time.Time) error {
	row := models.Loyalty{UserID: userID, SalonID: salonID}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "salon_id"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Where("user_id = ? AND salon_id = ?", userID, salonID).
		Updates(map[string]any{
			"points":          gorm.Expr("points + ?", points),
			"lifetime_points": gorm.Expr("lifetime_points + ?", points),
			"last_earned":     at,
			"updated_at":      at,
		}).Error
}

// redeemPoints debits points only if the balance covers them.
func redeemPoints(ctx context.Context, db *gorm.DB, userID, salonID uint, points int64) (bool, error) {
	if points == 0 {
		return true, nil
	}
	res := db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Where("user_id = ? AND salon_id = ? AND points >= ?", userID, salonID, points).
		Updates(map[string]any{
			"points":     gorm.Expr("points - ?", points),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func createNotification(ctx context.Context, db *gorm.DB, n *models.Notification) error {
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(n).Error
}
