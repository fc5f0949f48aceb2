package handlers

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/authz"
	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/notification"
)

type NotificationHandler struct {
	db    *gorm.DB
	notes *notification.Service
	az    *authz.Authorizer
}

func NewNotificationHandler(db *gorm.DB, notes *notification.Service, az *authz.Authorizer) *NotificationHandler {
	return &NotificationHandler{db: db, notes: notes, az: az}
}

type SendNotificationRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	inbox, err := h.notes.Inbox(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, inbox)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	n, err := h.notes.Get(ctx, id)
	if err != nil {
		respondLookup(c, err, "notification_not_found", "Notification not found.")
		return
	}

	if err := h.az.Authorize(middleware.Caller(c), authz.ActionNotificationRead, authz.Resource{
		SubjectUserID: n.UserID,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.notes.MarkRead(ctx, n); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := notification.ValidateSendType(req.Type); err != nil {
		httperr.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	// owners may only reach people who booked or earned points at one of their salons
	if caller := middleware.Caller(c); caller.Role != models.RoleAdmin {
		ok, err := h.allCustomersOf(ctx, caller.UserID, req.UserIDs)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if !ok {
			httperr.Respond(c, httperr.Forbidden("recipient_not_customer", "Notifications can only be sent to your salons' customers."))
			return
		}
	}

	notes, err := h.notes.Publish(
		ctx,
		req.UserIDs,
		req.Type,
		strings.TrimSpace(req.Title),
		req.Message,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"count": len(notes)})
}

func (h *NotificationHandler) allCustomersOf(ctx context.Context, ownerID uint, userIDs []uint) (bool, error) {
	var booked, loyal []uint
	err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Joins("JOIN salons ON salons.id = appointments.salon_id").
		Where("salons.owner_id = ? AND appointments.user_id IN ?", ownerID, userIDs).
		Distinct().
		Pluck("appointments.user_id", &booked).Error
	if err != nil {
		return false, err
	}
	err = h.db.WithContext(ctx).
		Model(&models.Loyalty{}).
		Joins("JOIN salons ON salons.id = loyalty.salon_id").
		Where("salons.owner_id = ? AND loyalty.user_id IN ?", ownerID, userIDs).
		Distinct().
		Pluck("loyalty.user_id", &loyal).Error
	if err != nil {
		return false, err
	}

	for _, id := range userIDs {
		if !slices.Contains(booked, id) && !slices.Contains(loyal, id) {
			return false, nil
		}
	}
	return true, nil
}
