package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// New builds a booked appointment with the service price frozen in.
func New(customerID uint, salonID uint, svc *models.Service, staffID *uint, at time.Time, notes string) *models.Appointment {
	return &models.Appointment{
		UserID:        customerID,
		SalonID:       salonID,
		StaffID:       staffID,
		ServiceID:     svc.ID,
		ScheduledTime: at.UTC(),
		Price:         svc.Price,
		Status:        string(InitialStatus()),
		Notes:         notes,
	}
}

func Line(ap *models.Appointment, svc *models.Service) *models.AppointmentService {
	return &models.AppointmentService{
		AppointmentID: ap.ID,
		ServiceID:     svc.ID,
		Duration:      svc.Duration,
		Price:         svc.Price,
	}
}

func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	changed, err := CanCancel(Status(ap.Status))
	if err != nil || !changed {
		return false, err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true, nil
}

func Complete(ap *models.Appointment, now time.Time) (bool, error) {
	changed, err := CanComplete(Status(ap.Status))
	if err != nil || !changed {
		return false, err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return true, nil
}

func Reschedule(ap *models.Appointment, at time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	ap.ScheduledTime = at.UTC()
	return nil
}

func CompletionMessage(points int64) string {
	return fmt.Sprintf("Your appointment is complete! You earned %d loyalty points.", points)
}
