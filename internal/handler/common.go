package handler // handler defines http handlers

import (
	"errors"   // errors provides errors.Is / errors.As
	"net/http" // status codes
	"strconv"  // strconv converts path parameters to numbers

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/repository"
	"github.com/iliyamo/seat-booking/internal/seating"
	"github.com/iliyamo/seat-booking/internal/service"
)

// VenueHandler exposes booking sessions over HTTP.
type VenueHandler struct {
	Svc *service.BookingService
}

// NewVenueHandler constructs a VenueHandler and panics if svc is nil.
func NewVenueHandler(svc *service.BookingService) *VenueHandler {
	if svc == nil {
		panic("nil booking service passed to NewVenueHandler")
	}
	return &VenueHandler{Svc: svc}
}

// venueID parses the :id path parameter.
func venueID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// writeError maps service and seating errors to HTTP responses.
func writeError(c echo.Context, err error) error {
	var capErr *seating.CapacityError
	switch {
	case errors.As(err, &capErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "insufficient_capacity",
			"message":   capErr.UserMessage(),
			"available": capErr.Available,
			"requested": capErr.Requested,
		})
	case errors.Is(err, seating.ErrInvalidCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be greater than zero"})
	case errors.Is(err, config.ErrLayoutInconsistent):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, service.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}
	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
