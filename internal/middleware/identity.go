package middleware

// Booking endpoints are public, so most callers of userID are "guest".

import (
	"github.com/labstack/echo/v4"
)

// userID returns the authenticated subject stored by JWTAuth, or "guest".
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
