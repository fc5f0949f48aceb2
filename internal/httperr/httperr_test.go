package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:           http.StatusBadRequest,
		KindUnauthorized:         http.StatusUnauthorized,
		KindForbidden:            http.StatusForbidden,
		KindNotFound:             http.StatusNotFound,
		KindConflict:             http.StatusConflict,
		KindInvalidState:         http.StatusConflict,
		KindInsufficientBalance:  http.StatusConflict,
		KindUnsupportedMediaType: http.StatusUnsupportedMediaType,
		KindTooManyRequests:      http.StatusTooManyRequests,
		KindInternal:             http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, Status(kind), "kind %d", kind)
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	base := Conflict("already_exists", "duplicate")
	wrapped := fmt.Errorf("create salon: %w", base)

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindConflict, e.Kind)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.True(t, IsBusiness(wrapped, "already_exists"))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		Respond(c, err)
		return w
	}

	t.Run("classified", func(t *testing.T) {
		w := run(Forbidden("forbidden", "Not allowed."))
		assert.Equal(t, http.StatusForbidden, w.Code)

		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "forbidden", body.Code)
		assert.Equal(t, "Not allowed.", body.Message)
	})

	t.Run("unclassified hides details", func(t *testing.T) {
		w := run(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Contains(t, w.Body.String(), "internal_error")
	})
}
