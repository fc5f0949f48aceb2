package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-platform/internal/infra/repository"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
	"github.com/BruksfildServices01/salon-platform/internal/usecase/review"
)

type ReviewHandler struct {
	create  *review.CreateReview
	respond *review.RespondReview
	list    *review.ListReviews
}

func NewReviewHandler(
	db *gorm.DB,
	rec audit.Recorder,
	az *authz.Authorizer,
	notifier notification.Deliverer,
) *ReviewHandler {
	repo := infraRepo.NewReviewGormRepository(db)

	return &ReviewHandler{
		create:  review.NewCreateReview(repo, rec, az),
		respond: review.NewRespondReview(repo, rec, az, notifier),
		list:    review.NewListReviews(repo),
	}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

type RespondReviewRequest struct {
	Response string `json:"response" binding:"required"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.create.Execute(c.Request.Context(), middleware.Caller(c), review.CreateInput{
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHandler) ListForSalon(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.list.Execute(c.Request.Context(), salonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) Respond(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RespondReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.respond.Execute(c.Request.Context(), middleware.Caller(c), id, req.Response)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rv)
}
