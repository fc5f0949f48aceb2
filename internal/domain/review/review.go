package review

import (
	"context"
	"math"
	"time"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.Validation("invalid_rating", "rating must be between 1 and 5.")
	}
	return nil
}

// CanReview checks the appointment state; ownership is checked by the
// caller's policy.
func CanReview(ap *models.Appointment) error {
	if ap.Status != "completed" {
		return httperr.InvalidState("appointment_not_completed", "Only completed appointments can be reviewed.")
	}
	return nil
}

func ErrDuplicate() error {
	return httperr.Conflict("review_exists", "This appointment has already been reviewed.")
}

func ResponseMessage(salonName string) string {
	return "The salon " + salonName + " responded to your review."
}

type Repository interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)

	ExistsForAppointment(ctx context.Context, appointmentID uint) (bool, error)
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	SaveResponse(ctx context.Context, id uint, response string, at time.Time) error
	ListForSalon(ctx context.Context, salonID uint) ([]models.Review, error)

	CreateNotification(ctx context.Context, n *models.Notification) error

	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// Average is the mean rating rounded to one decimal, 0 when empty.
func Average(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
