package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-platform/internal/authz"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Caller returns the authenticated identity set by AuthMiddleware.
func Caller(c *gin.Context) authz.Caller {
	return authz.Caller{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
	}
}
