package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	SalonID       uint
	ServiceID     uint
	StaffID       *uint
	ScheduledTime string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewBookAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		az:    az,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	in BookInput,
) (*models.Appointment, error) {

	if err := uc.az.CheckRole(caller, authz.ActionAppointmentBook); err != nil {
		return nil, err
	}

	if in.SalonID == 0 || in.ServiceID == 0 || strings.TrimSpace(in.ScheduledTime) == "" {
		return nil, httperr.Validation("missing_fields", "salon_id, service_id and scheduled_time are required.")
	}

	// --------------------------------------------------
	// Salon + timezone
	// --------------------------------------------------
	salon, err := uc.repo.GetSalon(ctx, in.SalonID)
	if err != nil {
		return nil, notFound(err, "salon_not_found", "Salon not found.")
	}

	settings, err := uc.repo.GetSettings(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	tz := timezone.DefaultTimezone
	if settings != nil {
		tz = settings.Timezone
	}

	at, err := timezone.ParseTimestamp(strings.TrimSpace(in.ScheduledTime), tz)
	if err != nil {
		return nil, httperr.Validation("invalid_scheduled_time", "scheduled_time must be an ISO-8601 timestamp.")
	}

	// --------------------------------------------------
	// Service (price is frozen from here)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, salon.ID, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found", "Service not found.")
	}

	// --------------------------------------------------
	// Optional staff member of this salon
	// --------------------------------------------------
	if in.StaffID != nil {
		st, err := uc.repo.GetStaff(ctx, *in.StaffID)
		if err != nil {
			return nil, notFound(err, "staff_not_found", "Staff member not found.")
		}
		if st.SalonID != salon.ID || !st.IsActive {
			return nil, httperr.NotFound("staff_not_found", "Staff member not found.")
		}
	}

	ap := domain.New(caller.UserID, salon.ID, svc, in.StaffID, at, strings.TrimSpace(in.Notes))

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.CreateAppointment(ctx, ap, domain.Line(ap, svc))
	})
	if err != nil {
		return nil, err
	}

	metrics.AppointmentTransitions.WithLabelValues(ap.Status).Inc()
	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &caller.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"service_id":     svc.ID,
			"price":          ap.Price.StringFixed(2),
			"scheduled_time": ap.ScheduledTime.Format(time.RFC3339),
		},
	})

	return ap, nil
}
