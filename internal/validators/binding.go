package validators

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-platform/internal/models"
)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Register installs the custom binding tags on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	for tag, fn := range map[string]validator.Func{
		"user_role": func(fl validator.FieldLevel) bool {
			return models.IsValidRole(fl.Field().String())
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return IsHHMM(fl.Field().String())
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return IsWeekday(fl.Field().String())
		},
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func IsHHMM(s string) bool {
	return hhmm.MatchString(s)
}

func IsWeekday(s string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return true
		}
	}
	return false
}
