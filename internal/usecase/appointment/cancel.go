package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		az:    az,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute cancels a booked appointment. Cancelling an already cancelled
// appointment succeeds without side effects.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionAppointmentModify, authz.Resource{
		SubjectUserID: ap.UserID,
	}); err != nil {
		return nil, err
	}

	now := uc.now()
	changed, err := domain.Cancel(ap, now)
	if err != nil || !changed {
		return ap, err
	}

	ok, err := uc.repo.MarkCancelled(ctx, ap.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// status moved underneath us; re-evaluate against the stored row
		current, err := uc.repo.GetAppointment(ctx, ap.ID)
		if err != nil {
			return nil, err
		}
		if _, err := domain.CanCancel(domain.Status(current.Status)); err != nil {
			return nil, err
		}
		return current, nil
	}

	metrics.AppointmentTransitions.WithLabelValues(ap.Status).Inc()
	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &caller.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
