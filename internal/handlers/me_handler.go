package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
	"github.com/BruksfildServices01/salon-platform/internal/middleware"
	"github.com/BruksfildServices01/salon-platform/internal/models"
	"github.com/BruksfildServices01/salon-platform/internal/storage"
)

type MeHandler struct {
	db      *gorm.DB
	storage storage.Presigner
}

// NewMeHandler accepts a nil presigner when object storage is not
// configured.
func NewMeHandler(db *gorm.DB, presigner storage.Presigner) *MeHandler {
	return &MeHandler{db: db, storage: presigner}
}

type ProfilePictureRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ProfilePictureUpload hands out a presigned PUT URL and records the
// object key on the user. The image bytes never pass through the API.
func (h *MeHandler) ProfilePictureUpload(c *gin.Context) {
	if h.storage == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "File storage is not configured.")
		return
	}

	var req ProfilePictureRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := middleware.Caller(c).UserID

	up, err := h.storage.ProfilePictureUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		var unsupported storage.ErrUnsupportedType
		if errors.As(err, &unsupported) {
			httperr.BadRequest(c, "unsupported_content_type", "Only JPEG, PNG or WebP images are accepted.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_pic", up.Key)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.NotFound("user_not_found", "User not found."))
		return
	}

	c.JSON(http.StatusOK, up)
}
