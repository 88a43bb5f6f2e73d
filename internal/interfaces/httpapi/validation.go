package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	isoDateLayout = "2006-01-02"
	clockLayout   = "15:04"
)

// newValidator registers the date and clock formats used by request bodies.
// Both accept an empty string, which patch bodies send to clear a field.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("isodate", layoutOrEmpty(isoDateLayout))
	_ = v.RegisterValidation("clock", layoutOrEmpty(clockLayout))
	return v
}

func layoutOrEmpty(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(layout, value)
		return err == nil
	}
}
