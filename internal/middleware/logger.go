package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-platform/internal/httperr"
)

// RequestLogger logs each request and recovers from panics.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			entry := log.WithFields(logrus.Fields{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"client_ip":  c.ClientIP(),
				"user_id":    c.GetUint(ContextUserID),
				"role":       c.GetString(ContextUserRole),
				"request_id": requestID(c),
				"latency":    time.Since(start).String(),
			})

			if recovered := recover(); recovered != nil {
				entry.WithField("stack", string(debug.Stack())).
					Errorf("panic: %v", recovered)
				httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Internal server error.")
				return
			}

			entry = entry.WithField("status", c.Writer.Status())
			switch {
			case len(c.Errors) > 0:
				entry.WithError(fmt.Errorf("%s", c.Errors.String())).Error("request failed")
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			default:
				entry.Info("request")
			}
		}()

		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-Id")
}
