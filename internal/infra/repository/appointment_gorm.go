package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/dto"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalon(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSettings(
	ctx context.Context,
	salonID uint,
) (*models.SalonSettings, error) {
	return findSettings(ctx, r.db, salonID)
}

func (r *AppointmentGormRepository) ListSalonStaffUserIDs(
	ctx context.Context,
	salonID uint,
) ([]uint, error) {

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("salon_id = ? AND is_active = ?", salonID, true).
		Pluck("user_id", &ids).Error
	return ids, err
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	staffID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).First(&st, staffID).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	line *models.AppointmentService,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return err
	}
	if line == nil {
		return nil
	}
	line.AppointmentID = ap.ID
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) updateIfBooked(
	ctx context.Context,
	id uint,
	values map[string]any,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(domain.StatusBooked)).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) Reschedule(
	ctx context.Context,
	id uint,
	at time.Time,
) (bool, error) {
	return r.updateIfBooked(ctx, id, map[string]any{
		"scheduled_time": at.UTC(),
	})
}

func (r *AppointmentGormRepository) MarkCancelled(
	ctx context.Context,
	id uint,
	at time.Time,
) (bool, error) {
	return r.updateIfBooked(ctx, id, map[string]any{
		"status":       string(domain.StatusCancelled),
		"cancelled_at": at,
	})
}

func (r *AppointmentGormRepository) MarkCompleted(
	ctx context.Context,
	id uint,
	at time.Time,
) (bool, error) {
	return r.updateIfBooked(ctx, id, map[string]any{
		"status":       string(domain.StatusCompleted),
		"completed_at": at,
	})
}

// --------------------------------------------------
// Completion side effects
// --------------------------------------------------

func (r *AppointmentGormRepository) AwardPoints(
	ctx context.Context,
	userID uint,
	salonID uint,
	points int64,
	at time.Time,
) error {
	return awardPoints(ctx, r.db, userID, salonID, points, at)
}

func (r *AppointmentGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return createNotification(ctx, r.db, n)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(`a.id, a.salon_id, s.name AS salon_name,
			a.service_id, sv.name AS service_name,
			a.user_id, u.full_name AS customer_name,
			a.staff_id, a.scheduled_time, a.price, a.status, a.notes`).
		Joins("LEFT JOIN salons s ON s.id = a.salon_id").
		Joins("LEFT JOIN services sv ON sv.id = a.service_id").
		Joins("LEFT JOIN users u ON u.id = a.user_id")
}

func (r *AppointmentGormRepository) ListForCustomer(
	ctx context.Context,
	userID uint,
	newestFirst bool,
) ([]dto.AppointmentListDTO, error) {

	order := "a.scheduled_time ASC"
	if newestFirst {
		order = "a.scheduled_time DESC"
	}

	var out []dto.AppointmentListDTO
	err := r.listQuery(ctx).
		Where("a.user_id = ?", userID).
		Order(order).
		Scan(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) ListForStaffUser(
	ctx context.Context,
	staffUserID uint,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	err := r.listQuery(ctx).
		Joins("JOIN staff st ON st.id = a.staff_id").
		Where("st.user_id = ?", staffUserID).
		Order("a.scheduled_time ASC").
		Scan(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) ListForStaffBetween(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	statuses []string,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	err := r.listQuery(ctx).
		Where("a.staff_id = ? AND a.scheduled_time >= ? AND a.scheduled_time < ?", staffID, start, end).
		Where("a.status IN ?", statuses).
		Order("a.scheduled_time ASC").
		Scan(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) ListForCustomerAtSalon(
	ctx context.Context,
	salonID uint,
	customerID uint,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	err := r.listQuery(ctx).
		Where("a.salon_id = ? AND a.user_id = ?", salonID, customerID).
		Order("a.scheduled_time DESC").
		Scan(&out).Error
	return out, err
}
