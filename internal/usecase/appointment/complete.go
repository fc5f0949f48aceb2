package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/metrics"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
)

type CompleteResult struct {
	Appointment      *models.Appointment `json:"appointment"`
	PointsEarned     int64               `json:"points_earned"`
	AlreadyCompleted bool                `json:"already_completed"`
}

type CompleteAppointment struct {
	repo     domain.Repository
	audit    audit.Recorder
	az       *authz.Authorizer
	notifier notification.Deliverer
	now      func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
	notifier notification.Deliverer,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		audit:    audit,
		az:       az,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute completes a booked appointment, awards loyalty points on its
// frozen price and notifies the customer, all in one transaction.
// Completing twice awards nothing the second time.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	caller authz.Caller,
	appointmentID uint,
) (*CompleteResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := uc.authorize(ctx, caller, ap); err != nil {
		return nil, err
	}

	now := uc.now()
	changed, err := domain.Complete(ap, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &CompleteResult{Appointment: ap, AlreadyCompleted: true}, nil
	}

	var (
		points int64
		note   *models.Notification
		again  bool
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ok, err := tx.MarkCompleted(ctx, ap.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			current, err := tx.GetAppointment(ctx, ap.ID)
			if err != nil {
				return err
			}
			if _, err := domain.CanComplete(domain.Status(current.Status)); err != nil {
				return err
			}
			*ap = *current
			again = true
			return nil
		}

		settings, err := tx.GetSettings(ctx, ap.SalonID)
		if err != nil {
			return err
		}
		points = loyalty.PointsFor(ap.Price, loyalty.RatesFor(settings).PointsPerDollar)

		if err := tx.AwardPoints(ctx, ap.UserID, ap.SalonID, points, now); err != nil {
			return err
		}

		note = &models.Notification{
			UserID:  ap.UserID,
			Type:    models.NotificationStatusUpdate,
			Title:   "Appointment completed",
			Message: domain.CompletionMessage(points),
			SentAt:  now,
		}
		return tx.CreateNotification(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	if again {
		return &CompleteResult{Appointment: ap, AlreadyCompleted: true}, nil
	}

	uc.notifier.Deliver(ctx, *note)
	metrics.AppointmentTransitions.WithLabelValues(ap.Status).Inc()
	metrics.PointsAwarded(points)
	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &caller.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"points_earned": points},
	})

	return &CompleteResult{Appointment: ap, PointsEarned: points}, nil
}

func (uc *CompleteAppointment) authorize(
	ctx context.Context,
	caller authz.Caller,
	ap *models.Appointment,
) error {

	if err := uc.az.CheckRole(caller, authz.ActionAppointmentFinish); err != nil {
		return err
	}

	salon, err := uc.repo.GetSalon(ctx, ap.SalonID)
	if err != nil {
		return notFound(err, "salon_not_found", "Salon not found.")
	}

	res := authz.Resource{SalonOwnerID: salon.OwnerID}
	if ap.StaffID != nil {
		st, err := uc.repo.GetStaff(ctx, *ap.StaffID)
		if err != nil && !dbpkg.IsNotFound(err) {
			return err
		}
		if st != nil {
			res.StaffUserID = st.UserID
		}
	}

	return uc.az.Authorize(caller, authz.ActionAppointmentFinish, res)
}
