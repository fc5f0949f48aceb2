package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Status maps an error kind to its HTTP status.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState, KindInsufficientBalance:
		return http.StatusConflict
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var log = logrus.StandardLogger()

// SetLogger replaces the logger used for unclassified errors.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// Respond writes err as JSON. Unclassified errors are logged and
// surfaced as internal_error without leaking their text.
func Respond(c *gin.Context, err error) {
	if e, ok := As(err); ok {
		msg := e.Message
		if msg == "" {
			msg = e.Code
		}
		Write(c, Status(e.Kind), e.Code, msg)
		return
	}

	log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).WithError(err).Error("unhandled error")

	_ = c.Error(err)
	Internal(c, "internal_error", "Internal server error.")
}
