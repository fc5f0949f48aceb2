package review

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/review"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
)

type RespondReview struct {
	repo     domain.Repository
	audit    audit.Recorder
	az       *authz.Authorizer
	notifier notification.Deliverer
	now      func() time.Time
}

func NewRespondReview(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
	notifier notification.Deliverer,
) *RespondReview {
	return &RespondReview{
		repo:     repo,
		audit:    audit,
		az:       az,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute stores the salon's reply and tells the reviewer about it.
// Responding again overwrites the previous reply.
func (uc *RespondReview) Execute(
	ctx context.Context,
	caller authz.Caller,
	reviewID uint,
	response string,
) (*models.Review, error) {

	response = strings.TrimSpace(response)
	if response == "" {
		return nil, httperr.Validation("missing_fields", "response is required.")
	}

	if err := uc.az.CheckRole(caller, authz.ActionReviewRespond); err != nil {
		return nil, err
	}

	rv, err := uc.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, notFound(err, "review_not_found", "Review not found.")
	}

	salon, err := uc.repo.GetSalon(ctx, rv.SalonID)
	if err != nil {
		return nil, notFound(err, "salon_not_found", "Salon not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionReviewRespond, authz.Resource{
		SalonOwnerID: salon.OwnerID,
	}); err != nil {
		return nil, err
	}

	now := uc.now()
	note := &models.Notification{
		UserID:  rv.UserID,
		Type:    models.NotificationStatusUpdate,
		Title:   "Review response",
		Message: domain.ResponseMessage(salon.Name),
		SentAt:  now,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.SaveResponse(ctx, rv.ID, response, now); err != nil {
			return err
		}
		return tx.CreateNotification(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	rv.Response = response
	rv.RespondedAt = &now

	uc.notifier.Deliver(ctx, *note)
	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &caller.UserID,
		Action:   "review_responded",
		Entity:   "review",
		EntityID: &rv.ID,
	})

	return rv, nil
}
