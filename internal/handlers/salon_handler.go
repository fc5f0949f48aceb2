package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/timezone"
)

var salonStatuses = []string{
	models.SalonStatusPending,
	models.SalonStatusActive,
	models.SalonStatusBlocked,
}

type SalonHandler struct {
	db    *gorm.DB
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewSalonHandler(db *gorm.DB, rec audit.Recorder, az *authz.Authorizer) *SalonHandler {
	return &SalonHandler{db: db, audit: rec, az: az}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSalonRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}

type ApproveSalonRequest struct {
	Status string `json:"status"`
}

type UpdateSettingsRequest struct {
	Timezone               *string          `json:"timezone"`
	CancellationPolicy     *string          `json:"cancellation_policy"`
	TaxRate                *decimal.Decimal `json:"tax_rate"`
	LoyaltyPointsPerDollar *int             `json:"loyalty_points_per_dollar"`
	LoyaltyRedemptionRate  *decimal.Decimal `json:"loyalty_redemption_rate"`
	AutoCompleteAfter      *int             `json:"auto_complete_after"`
}

// ======================================================
// READ
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", models.SalonStatusActive)
	if !slices.Contains(salonStatuses, status) {
		httperr.BadRequest(c, "invalid_status", "status must be pending, active or blocked.")
		return
	}

	var salons []models.Salon
	if err := h.db.
		Where("status = ?", status).
		Order("name ASC").
		Find(&salons).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return
	}

	var settings *models.SalonSettings
	var s models.SalonSettings
	if err := h.db.Where("salon_id = ?", salon.ID).First(&s).Error; err == nil {
		settings = &s
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"settings": settings,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	caller := middleware.Caller(c)
	if err := h.az.CheckRole(caller, authz.ActionSalonCreate); err != nil {
		httperr.Respond(c, err)
		return
	}

	var req CreateSalonRequest
	if !bindJSON(c, &req) {
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	salon := models.Salon{
		OwnerID:     caller.UserID,
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Description: req.Description,
		Status:      models.SalonStatusPending,
	}
	var settings models.SalonSettings

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}
		settings = models.SalonSettings{
			SalonID:                salon.ID,
			Timezone:               tz,
			TaxRate:                decimal.Zero,
			LoyaltyPointsPerDollar: loyalty.DefaultPointsPerDollar,
			LoyaltyRedemptionRate:  loyalty.DefaultRedemptionRate,
			AutoCompleteAfter:      24,
		}
		return tx.Create(&settings).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &caller.UserID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"salon":    salon,
		"settings": settings,
	})
}

// ======================================================
// ADMIN APPROVAL
// ======================================================

func (h *SalonHandler) Approve(c *gin.Context) {
	caller := middleware.Caller(c)
	if err := h.az.CheckRole(caller, authz.ActionSalonApprove); err != nil {
		httperr.Respond(c, err)
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ApproveSalonRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.Status == "" {
		req.Status = models.SalonStatusActive
	}
	if req.Status != models.SalonStatusActive && req.Status != models.SalonStatusBlocked {
		httperr.BadRequest(c, "invalid_status", "status must be active or blocked.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return
	}

	if err := h.db.Model(&salon).Update("status", req.Status).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &caller.UserID,
		Action:   "salon_" + req.Status,
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	c.JSON(http.StatusOK, salon)
}

// ======================================================
// SETTINGS
// ======================================================

func (h *SalonHandler) UpdateSettings(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionSalonSettings, id)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		updates["timezone"] = *req.Timezone
	}
	if req.CancellationPolicy != nil {
		updates["cancellation_policy"] = *req.CancellationPolicy
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			httperr.BadRequest(c, "invalid_tax_rate", "tax_rate must not be negative.")
			return
		}
		updates["tax_rate"] = *req.TaxRate
	}
	if req.LoyaltyPointsPerDollar != nil {
		if *req.LoyaltyPointsPerDollar < 0 {
			httperr.BadRequest(c, "invalid_points_per_dollar", "loyalty_points_per_dollar must not be negative.")
			return
		}
		updates["loyalty_points_per_dollar"] = *req.LoyaltyPointsPerDollar
	}
	if req.LoyaltyRedemptionRate != nil {
		if req.LoyaltyRedemptionRate.IsNegative() {
			httperr.BadRequest(c, "invalid_redemption_rate", "loyalty_redemption_rate must not be negative.")
			return
		}
		updates["loyalty_redemption_rate"] = *req.LoyaltyRedemptionRate
	}
	if req.AutoCompleteAfter != nil {
		if *req.AutoCompleteAfter < 0 {
			httperr.BadRequest(c, "invalid_auto_complete_after", "auto_complete_after must not be negative.")
			return
		}
		updates["auto_complete_after"] = *req.AutoCompleteAfter
	}

	var settings models.SalonSettings
	err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("salon_id = ?", salon.ID).First(&settings).Error
		if dbpkg.IsNotFound(err) {
			settings = models.SalonSettings{
				SalonID:                salon.ID,
				Timezone:               timezone.DefaultTimezone,
				TaxRate:                decimal.Zero,
				LoyaltyPointsPerDollar: loyalty.DefaultPointsPerDollar,
				LoyaltyRedemptionRate:  loyalty.DefaultRedemptionRate,
				AutoCompleteAfter:      24,
			}
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&settings).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&settings, settings.ID).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	userID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &userID,
		Action:   "salon_settings_updated",
		Entity:   "salon_settings",
		EntityID: &settings.ID,
		Metadata: updates,
	})

	c.JSON(http.StatusOK, settings)
}
