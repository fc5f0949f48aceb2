package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/dto"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalon(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// GetSettings returns nil settings (no error) when none are stored.
	GetSettings(
		ctx context.Context,
		salonID uint,
	) (*models.SalonSettings, error)

	ListSalonStaffUserIDs(
		ctx context.Context,
		salonID uint,
	) ([]uint, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		staffID uint,
	) (*models.Staff, error)

	// -------- Appointment (create) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		line *models.AppointmentService,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------
	// Each returns false when the row was no longer booked.
	Reschedule(
		ctx context.Context,
		id uint,
		at time.Time,
	) (bool, error)

	MarkCancelled(
		ctx context.Context,
		id uint,
		at time.Time,
	) (bool, error)

	MarkCompleted(
		ctx context.Context,
		id uint,
		at time.Time,
	) (bool, error)

	// -------- Side effects of completion --------
	AwardPoints(
		ctx context.Context,
		userID uint,
		salonID uint,
		points int64,
		at time.Time,
	) error

	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	// -------- Listing --------
	ListForCustomer(
		ctx context.Context,
		userID uint,
		newestFirst bool,
	) ([]dto.AppointmentListDTO, error)

	ListForStaffUser(
		ctx context.Context,
		staffUserID uint,
	) ([]dto.AppointmentListDTO, error)

	ListForStaffBetween(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
		statuses []string,
	) ([]dto.AppointmentListDTO, error)

	ListForCustomerAtSalon(
		ctx context.Context,
		salonID uint,
		customerID uint,
	) ([]dto.AppointmentListDTO, error)

	// -------- Unit of work --------
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
