// AngelaMos | 2026
// validate.go

package core

import (
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

// NewValidator returns a validator with the project's custom tags
// registered. "yyyymmdd" accepts strict YYYY-MM-DD strings.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // tag name and func are static
	_ = v.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
		return calendar.IsStrict(fl.Field().String())
	})

	return v
}
