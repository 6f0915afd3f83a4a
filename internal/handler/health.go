package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers and monitoring.  It returns
// "ok" with status 200 and does not touch any venue session.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
