package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewServiceHandler(db *gorm.DB, rec audit.Recorder, az *authz.Authorizer) *ServiceHandler {
	return &ServiceHandler{db: db, audit: rec, az: az}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	Duration    int             `json:"duration" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
}

// --------- Handlers ---------

// List returns the salon's active services, optionally filtered by
// category or a name search.
func (h *ServiceHandler) List(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	q := h.db.Where("salon_id = ? AND is_active = ?", salonID, true)

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionCatalogManage, salonID)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Price.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "price must be greater than zero.")
		return
	}

	svc := models.Service{
		SalonID:     salon.ID,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Duration:    req.Duration,
		Price:       req.Price.Round(2),
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	callerID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &callerID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: map[string]any{"price": svc.Price.StringFixed(2)},
	})

	c.JSON(http.StatusCreated, svc)
}
