package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
)

type PromotionHandler struct {
	db        *gorm.DB
	audit     audit.Recorder
	az        *authz.Authorizer
	loyalty   loyalty.Repository
	publisher notification.Publisher
	log       *logrus.Logger
}

func NewPromotionHandler(
	db *gorm.DB,
	rec audit.Recorder,
	az *authz.Authorizer,
	loyaltyRepo loyalty.Repository,
	publisher notification.Publisher,
	log *logrus.Logger,
) *PromotionHandler {
	return &PromotionHandler{
		db:        db,
		audit:     rec,
		az:        az,
		loyalty:   loyaltyRepo,
		publisher: publisher,
		log:       log,
	}
}

type CreatePromotionRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	DiscountPercent int       `json:"discount_percent" binding:"required,min=1,max=100"`
	ValidFrom       time.Time `json:"valid_from" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
	IsActive        *bool     `json:"is_active"`
}

// Create stores the promotion and announces it to the salon's loyal
// customers. A failed announcement does not undo the promotion.
func (h *PromotionHandler) Create(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionPromotionCreate, salonID)
	if !ok {
		return
	}

	var req CreatePromotionRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		httperr.BadRequest(c, "invalid_period", "valid_until must be after valid_from.")
		return
	}

	promo := models.Promotion{
		SalonID:         salon.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       req.ValidFrom.UTC(),
		ValidUntil:      req.ValidUntil.UTC(),
		IsActive:        req.IsActive == nil || *req.IsActive,
	}
	ctx := c.Request.Context()

	if err := h.db.WithContext(ctx).Create(&promo).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	notified := 0
	recipients, err := h.loyalty.LoyalCustomers(ctx, salon.ID, loyalty.LoyalCustomerThreshold)
	if err == nil {
		var notes []models.Notification
		notes, err = h.publisher.Publish(
			ctx,
			recipients,
			models.NotificationPromotion,
			promo.Title,
			fmt.Sprintf("%s - %d%% off!", promo.Description, promo.DiscountPercent),
		)
		notified = len(notes)
	}
	if err != nil {
		h.log.WithError(err).
			WithField("promotion_id", promo.ID).
			Warn("promotion announcement failed")
	}

	callerID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &callerID,
		Action:   "promotion_created",
		Entity:   "promotion",
		EntityID: &promo.ID,
		Metadata: map[string]any{
			"discount_percent": promo.DiscountPercent,
			"notified":         notified,
		},
	})

	c.JSON(http.StatusCreated, gin.H{
		"promotion": promo,
		"notified":  notified,
	})
}

// List returns the salon's active promotions whose validity window
// contains the current instant.
func (h *PromotionHandler) List(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	now := time.Now().UTC()
	var promos []models.Promotion
	if err := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ? AND is_active = ?", salonID, true).
		Where("valid_from <= ? AND valid_until >= ?", now, now).
		Order("valid_until ASC").
		Find(&promos).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, promos)
}
