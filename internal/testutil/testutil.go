// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

// NewDB opens a private in-memory sqlite database with the full schema.
// A single connection keeps the memory database alive and serialises
// writers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=private", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	id := uuid.NewString()[:8]
	u := &models.User{
		FullName:     "User " + id,
		Email:        id + "@example.com",
		Phone:        "+1555" + id,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateSalon creates an active salon with settings.
func CreateSalon(t *testing.T, db *gorm.DB, ownerID uint, pointsPerDollar int) *models.Salon {
	t.Helper()

	s := &models.Salon{
		OwnerID: ownerID,
		Name:    "Salon " + uuid.NewString()[:6],
		Status:  models.SalonStatusActive,
	}
	require.NoError(t, db.Create(s).Error)

	require.NoError(t, db.Create(&models.SalonSettings{
		SalonID:                s.ID,
		Timezone:               "UTC",
		TaxRate:                decimal.Zero,
		LoyaltyPointsPerDollar: pointsPerDollar,
		LoyaltyRedemptionRate:  Money("0.01"),
	}).Error)
	return s
}

func CreateService(t *testing.T, db *gorm.DB, salonID uint, price string) *models.Service {
	t.Helper()

	svc := &models.Service{
		SalonID:  salonID,
		Name:     "Cut",
		Duration: 30,
		Price:    Money(price),
		IsActive: true,
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func CreateProduct(t *testing.T, db *gorm.DB, salonID uint, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		SalonID:  salonID,
		Name:     "Shampoo",
		Category: "Hair",
		Price:    Money(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateStaff(t *testing.T, db *gorm.DB, salonID, userID uint) *models.Staff {
	t.Helper()

	st := &models.Staff{
		SalonID:  salonID,
		UserID:   userID,
		Role:     "barber",
		IsActive: true,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

func SetLoyalty(t *testing.T, db *gorm.DB, userID, salonID uint, points int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Loyalty{
		UserID:         userID,
		SalonID:        salonID,
		Points:         points,
		LifetimePoints: points,
	}).Error)
}

func LoyaltyOf(t *testing.T, db *gorm.DB, userID, salonID uint) models.Loyalty {
	t.Helper()
	var l models.Loyalty
	err := db.Where("user_id = ? AND salon_id = ?", userID, salonID).First(&l).Error
	if err != nil {
		return models.Loyalty{UserID: userID, SalonID: salonID}
	}
	return l
}

func Count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
