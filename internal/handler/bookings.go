package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type bookingRequest struct {
	Count int `json:"count" validate:"required,gt=0"`
}

// CreateBooking handles POST /v1/venues/:id/bookings.  The body is
// {"count": N}.  It returns 201 with the assigned seat numbers, or 409 with
// the number of seats actually available when the venue cannot fit N.
func (h *VenueHandler) CreateBooking(c echo.Context) error {
	id, ok := venueID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be greater than zero"})
	}
	b, err := h.Svc.Book(c.Request().Context(), id, body.Count)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"booking_ref": b.Ref,
		"venue_id":    b.VenueID,
		"seats":       b.Outcome.Seats,
		"mode":        b.Outcome.Mode,
		"message":     b.Message,
	})
}
