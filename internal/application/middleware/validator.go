package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate
type RequestValidator struct {
	validator *validator.Validate
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validator.Struct(i)
}

// SetupValidator registers the struct validator on the echo instance
func SetupValidator(e *echo.Echo) {
	e.Validator = &RequestValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}
