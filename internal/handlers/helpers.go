package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/timezone"
)

// paramID reads a positive integer path parameter. On failure it writes
// a 400 and returns false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// ownedSalon loads the salon and checks action against its owner.
func ownedSalon(c *gin.Context, db *gorm.DB, az *authz.Authorizer, action authz.Action, salonID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := db.WithContext(c.Request.Context()).First(&salon, salonID).Error; err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return nil, false
	}

	if err := az.Authorize(middleware.Caller(c), action, authz.Resource{
		SalonOwnerID: salon.OwnerID,
	}); err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return &salon, true
}

// respondLookup maps a missing row to 404 and anything else to 500.
func respondLookup(c *gin.Context, err error, code, message string) {
	if dbpkg.IsNotFound(err) {
		httperr.Respond(c, httperr.NotFound(code, message))
		return
	}
	httperr.Respond(c, err)
}

func salonTimezone(db *gorm.DB, salonID uint) string {
	var settings models.SalonSettings
	if err := db.Select("timezone").Where("salon_id = ?", salonID).First(&settings).Error; err != nil {
		return timezone.DefaultTimezone
	}
	if !timezone.IsValid(settings.Timezone) {
		return timezone.DefaultTimezone
	}
	return settings.Timezone
}

func pageParams(c *gin.Context, defLimit, maxLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defLimit
	}

	return page, limit, (page - 1) * limit
}
