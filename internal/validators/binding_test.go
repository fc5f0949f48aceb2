package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomTags(t *testing.T) {
	require.NoError(t, Register())

	type req struct {
		Role  string `binding:"required,user_role"`
		Start string `binding:"required,hhmm"`
		Day   string `binding:"required,weekday"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&req{Role: "owner", Start: "09:30", Day: "Monday"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Role: "boss", Start: "09:30", Day: "Monday"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Role: "owner", Start: "9:30", Day: "Monday"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Role: "owner", Start: "24:00", Day: "Monday"}))
	assert.Error(t, binding.Validator.ValidateStruct(&req{Role: "owner", Start: "09:30", Day: "monday"}))
}
