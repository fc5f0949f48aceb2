package review

import (
	"context"

	domain "github.com/BruksfildServices01/salon-platform/internal/domain/review"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type SalonReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Total         int             `json:"total"`
}

type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

func (uc *ListReviews) Execute(ctx context.Context, salonID uint) (*SalonReviews, error) {
	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		return nil, notFound(err, "salon_not_found", "Salon not found.")
	}

	reviews, err := uc.repo.ListForSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &SalonReviews{
		Reviews:       reviews,
		AverageRating: domain.Average(reviews),
		Total:         len(reviews),
	}, nil
}
