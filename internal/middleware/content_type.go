package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
)

// RequireJSON rejects mutating requests that carry a non-JSON body.
// Body-less calls such as PATCH .../cancel pass through.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 && c.GetHeader("Content-Type") == "" {
			c.Next()
			return
		}

		if c.ContentType() != gin.MIMEJSON {
			httperr.Abort(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Request body must be application/json.")
			return
		}
		c.Next()
	}
}
