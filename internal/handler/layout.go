package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// ReplaceLayout handles PUT /v1/venues/:id/layout.  It stores a new layout
// and starts the venue over with an entirely free grid.  last_row_seats may
// be omitted and is then derived from the other two fields.
func (h *VenueHandler) ReplaceLayout(c echo.Context) error {
	id, ok := venueID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var body seating.Layout
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.LastRowSeats == 0 {
		body.LastRowSeats = config.DeriveLastRow(body.TotalSeats, body.SeatsPerRow)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "total_seats and seats_per_row must be between 1 and 100000 and last_row_seats at most seats_per_row",
		})
	}
	m, err := h.Svc.Reset(c.Request().Context(), id, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
