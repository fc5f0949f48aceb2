package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	dbpkg "github.com/BruksfildServices01/salon-platform/internal/db"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
)

type StaffHandler struct {
	db    *gorm.DB
	audit audit.Recorder
	az    *authz.Authorizer
}

func NewStaffHandler(db *gorm.DB, rec audit.Recorder, az *authz.Authorizer) *StaffHandler {
	return &StaffHandler{db: db, audit: rec, az: az}
}

// ======================================================
// REQUESTS
// ======================================================

type AddStaffRequest struct {
	UserID         uint   `json:"user_id" binding:"required"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
}

type AssignStaffRequest struct {
	Role           *string `json:"role"`
	Specialization *string `json:"specialization"`
	IsActive       *bool   `json:"is_active"`
}

type AvailabilityRequest struct {
	DayOfWeek   string `json:"day_of_week" binding:"required,weekday"`
	StartTime   string `json:"start_time" binding:"required,hhmm"`
	EndTime     string `json:"end_time" binding:"required,hhmm"`
	IsAvailable *bool  `json:"is_available"`
}

type UpdateAvailabilityRequest struct {
	DayOfWeek   *string `json:"day_of_week" binding:"omitempty,weekday"`
	StartTime   *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime     *string `json:"end_time" binding:"omitempty,hhmm"`
	IsAvailable *bool   `json:"is_available"`
}

type staffView struct {
	ID             uint   `json:"id"`
	SalonID        uint   `json:"salon_id"`
	UserID         uint   `json:"user_id"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
	IsActive       bool   `json:"is_active"`
}

// ======================================================
// STAFF
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var out []staffView
	if err := h.db.
		Table("staff AS st").
		Select("st.id, st.salon_id, st.user_id, u.full_name, st.role, st.specialization, st.is_active").
		Joins("JOIN users u ON u.id = st.user_id").
		Where("st.salon_id = ?", salonID).
		Order("st.id ASC").
		Scan(&out).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *StaffHandler) Add(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	salon, ok := ownedSalon(c, h.db, h.az, authz.ActionStaffManage, salonID)
	if !ok {
		return
	}

	var req AddStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		respondLookup(c, err, "user_not_found", "User not found.")
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "barber"
	}

	st := models.Staff{
		SalonID:        salon.ID,
		UserID:         user.ID,
		Role:           role,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if err := h.db.Create(&st).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.Conflict("staff_exists", "User already works at this salon."))
			return
		}
		httperr.Respond(c, err)
		return
	}

	callerID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &callerID,
		Action:   "staff_added",
		Entity:   "staff",
		EntityID: &st.ID,
		Metadata: map[string]any{"user_id": user.ID},
	})

	c.JSON(http.StatusCreated, st)
}

func (h *StaffHandler) Assign(c *gin.Context) {
	staffID, ok := paramID(c, "id")
	if !ok {
		return
	}

	st, salon, ok := h.loadStaff(c, staffID)
	if !ok {
		return
	}

	if err := h.az.Authorize(middleware.Caller(c), authz.ActionStaffManage, authz.Resource{
		SalonOwnerID: salon.OwnerID,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	var req AssignStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Role != nil && strings.TrimSpace(*req.Role) != "" {
		updates["role"] = strings.TrimSpace(*req.Role)
	}
	if req.Specialization != nil {
		updates["specialization"] = *req.Specialization
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.Model(st).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		if err := h.db.First(st, st.ID).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	callerID := middleware.Caller(c).UserID
	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &callerID,
		Action:   "staff_assigned",
		Entity:   "staff",
		EntityID: &st.ID,
		Metadata: updates,
	})

	c.JSON(http.StatusOK, st)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *StaffHandler) GetAvailability(c *gin.Context) {
	staffID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, _, ok := h.loadStaff(c, staffID); !ok {
		return
	}

	var slots []models.StaffAvailability
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("id ASC").
		Find(&slots).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *StaffHandler) AddAvailability(c *gin.Context) {
	staffID, ok := paramID(c, "id")
	if !ok {
		return
	}

	st, ok := h.scheduleAccess(c, staffID)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_time_range", "start_time must be before end_time.")
		return
	}

	slot := models.StaffAvailability{
		StaffID:     st.ID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *StaffHandler) UpdateAvailability(c *gin.Context) {
	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var slot models.StaffAvailability
	if err := h.db.First(&slot, slotID).Error; err != nil {
		respondLookup(c, err, "availability_not_found", "Availability slot not found.")
		return
	}

	if _, ok := h.scheduleAccess(c, slot.StaffID); !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if slot.StartTime >= slot.EndTime {
		httperr.BadRequest(c, "invalid_time_range", "start_time must be before end_time.")
		return
	}

	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ======================================================
// HELPERS
// ======================================================

func (h *StaffHandler) loadStaff(c *gin.Context, staffID uint) (*models.Staff, *models.Salon, bool) {
	var st models.Staff
	if err := h.db.First(&st, staffID).Error; err != nil {
		respondLookup(c, err, "staff_not_found", "Staff member not found.")
		return nil, nil, false
	}

	var salon models.Salon
	if err := h.db.First(&salon, st.SalonID).Error; err != nil {
		respondLookup(c, err, "salon_not_found", "Salon not found.")
		return nil, nil, false
	}
	return &st, &salon, true
}

// scheduleAccess lets the staff member or the salon owner manage hours.
func (h *StaffHandler) scheduleAccess(c *gin.Context, staffID uint) (*models.Staff, bool) {
	st, salon, ok := h.loadStaff(c, staffID)
	if !ok {
		return nil, false
	}

	if err := h.az.Authorize(middleware.Caller(c), authz.ActionStaffSchedule, authz.Resource{
		StaffUserID:  st.UserID,
		SalonOwnerID: salon.OwnerID,
	}); err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return st, true
}
