package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	assert.True(t, httperr.IsKind(ValidateRating(0), httperr.KindValidation))
	assert.True(t, httperr.IsKind(ValidateRating(6), httperr.KindValidation))
}

func TestCanReview(t *testing.T) {
	assert.NoError(t, CanReview(&models.Appointment{Status: "completed"}))
	for _, s := range []string{"booked", "cancelled", "no_show"} {
		err := CanReview(&models.Appointment{Status: s})
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState), s)
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 4.3, Average([]models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}))
}
