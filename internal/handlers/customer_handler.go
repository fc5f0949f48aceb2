package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
	az *authz.Authorizer
}

func NewCustomerHandler(db *gorm.DB, az *authz.Authorizer) *CustomerHandler {
	return &CustomerHandler{db: db, az: az}
}

type customerRow struct {
	UserID        uint   `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Visits        int64  `json:"visits"`
	LastBookingID uint   `json:"last_booking_id"`
	LoyaltyPoints int64  `json:"loyalty_points"`
}

// ======================================================
// LIST CUSTOMERS (OWNER / STAFF)
// ======================================================

// List is everyone who booked at the salon, most recent booker first.
func (h *CustomerHandler) List(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return
	}

	var staffIDs []uint
	if err := h.db.Model(&models.Staff{}).
		Where("salon_id = ? AND is_active = ?", salon.ID, true).
		Pluck("user_id", &staffIDs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.az.Authorize(middleware.Caller(c), authz.ActionCustomerHistory, authz.Resource{
		SalonOwnerID:      salon.OwnerID,
		SalonStaffUserIDs: staffIDs,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	q := h.db.
		Table("appointments AS a").
		Select(`
			u.id AS user_id,
			u.full_name,
			u.email,
			u.phone,
			COUNT(a.id) AS visits,
			MAX(a.id) AS last_booking_id,
			COALESCE(MAX(l.points), 0) AS loyalty_points
		`).
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("LEFT JOIN loyalty l ON l.user_id = a.user_id AND l.salon_id = a.salon_id").
		Where("a.salon_id = ?", salon.ID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(u.full_name) LIKE ? OR u.phone LIKE ? OR LOWER(u.email) LIKE ?",
			like, like, like,
		)
	}

	var rows []customerRow
	if err := q.
		Group("u.id, u.full_name, u.email, u.phone").
		Order("last_booking_id DESC").
		Scan(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}
