package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/timezone"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		az:    az,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
	newTime string,
) (*models.Appointment, error) {

	if strings.TrimSpace(newTime) == "" {
		return nil, httperr.Validation("missing_fields", "new_time is required.")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionAppointmentModify, authz.Resource{
		SubjectUserID: ap.UserID,
	}); err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}
	tz := timezone.DefaultTimezone
	if settings != nil {
		tz = settings.Timezone
	}

	at, err := timezone.ParseTimestamp(strings.TrimSpace(newTime), tz)
	if err != nil {
		return nil, httperr.Validation("invalid_scheduled_time", "new_time must be an ISO-8601 timestamp.")
	}

	if err := domain.Reschedule(ap, at); err != nil {
		return nil, err
	}

	ok, err := uc.repo.Reschedule(ctx, ap.ID, ap.ScheduledTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with cancel/complete
		return nil, httperr.InvalidState("invalid_state", "Only booked appointments can be rescheduled.")
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &caller.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
