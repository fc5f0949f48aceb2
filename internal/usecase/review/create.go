package review

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	domain "github.com/BruksfildServices01/salon-platform/internal/domain/review"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type CreateInput struct {
	AppointmentID uint
	Rating        int
	Comment       string
}

type CreateReview struct {
	repo  domain.Repository
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewCreateReview(
	repo domain.Repository,
	audit audit.Recorder,
	az *authz.Authorizer,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: audit,
		az:    az,
	}
}

// Execute records the customer's review of a completed appointment. An
// appointment can be reviewed once.
func (uc *CreateReview) Execute(
	ctx context.Context,
	caller authz.Caller,
	in CreateInput,
) (*models.Review, error) {

	if in.AppointmentID == 0 {
		return nil, httperr.Validation("missing_fields", "appointment_id is required.")
	}
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := uc.az.Authorize(caller, authz.ActionReviewCreate, authz.Resource{
		SubjectUserID: ap.UserID,
	}); err != nil {
		return nil, err
	}

	if err := domain.CanReview(ap); err != nil {
		return nil, err
	}

	exists, err := uc.repo.ExistsForAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate()
	}

	rv := &models.Review{
		AppointmentID: ap.ID,
		UserID:        caller.UserID,
		SalonID:       ap.SalonID,
		StaffID:       ap.StaffID,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		// lost the race against a concurrent review of the same appointment
		if dbpkg.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicate()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &caller.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rv.ID,
		Metadata: map[string]any{"rating": rv.Rating},
	})

	return rv, nil
}

func notFound(err error, code, message string) error {
	if dbpkg.IsNotFound(err) {
		return httperr.NotFound(code, message)
	}
	return err
}
