package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/audit"
	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/salon-platform/internal/infra/repository"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
	"github.com/BruksfildServices01/salon-platform/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book       *appointment.BookAppointment
	reschedule *appointment.RescheduleAppointment
	cancel     *appointment.CancelAppointment
	complete   *appointment.CompleteAppointment
	list       *appointment.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	rec audit.Recorder,
	az *authz.Authorizer,
	notifier notification.Deliverer,
) *AppointmentHandler {
	repo := infraRepo.NewAppointmentGormRepository(db)

	return &AppointmentHandler{
		book:       appointment.NewBookAppointment(repo, rec, az),
		reschedule: appointment.NewRescheduleAppointment(repo, rec, az),
		cancel:     appointment.NewCancelAppointment(repo, rec, az),
		complete:   appointment.NewCompleteAppointment(repo, rec, az, notifier),
		list:       appointment.NewListAppointments(repo, az),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	SalonID       uint   `json:"salon_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StaffID       *uint  `json:"staff_id"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
	Notes         string `json:"notes"`
}

type RescheduleRequest struct {
	NewTime string `json:"new_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), middleware.Caller(c), appointment.BookInput{
		SalonID:       req.SalonID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		ScheduledTime: req.ScheduledTime,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), middleware.Caller(c), id, req.NewTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := h.list.Mine(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	aps, err := h.list.History(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) StaffDay(c *gin.Context) {
	staffID, ok := paramID(c, "id")
	if !ok {
		return
	}

	aps, err := h.list.StaffDay(c.Request.Context(), middleware.Caller(c), staffID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) CustomerHistory(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return
	}

	aps, err := h.list.CustomerHistory(c.Request.Context(), middleware.Caller(c), salonID, customerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}
