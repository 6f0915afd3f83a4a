package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator plugs go-playground/validator into echo's c.Validate.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// NewValidator returns the echo.Validator used by all handlers.
func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New()}
}
