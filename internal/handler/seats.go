package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seat-booking/internal/service"
)

// ListVenues handles GET /v1/venues and returns every venue with its layout.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	items, err := h.Svc.Venues(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetSeatMap handles GET /v1/venues/:id/seats.  The response lists every row
// with its label and the number and status of each seat; clients redraw
// the venue from it.
func (h *VenueHandler) GetSeatMap(c echo.Context) error {
	id, ok := venueID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	m, err := h.Svc.SeatMap(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// GetSeat handles GET /v1/venues/:id/seats/:number and returns where a seat
// sits so a client can scroll it into view.
func (h *VenueHandler) GetSeat(c echo.Context) error {
	id, ok := venueID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	v, err := h.Svc.Locate(c.Request().Context(), id, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// GetAvailability handles GET /v1/venues/:id/availability.  With the optional
// window_start and window_size query parameters it also reports whether that
// column window is free in every row.
func (h *VenueHandler) GetAvailability(c echo.Context) error {
	id, ok := venueID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var window *service.Window
	if ws, wn := c.QueryParam("window_start"), c.QueryParam("window_size"); ws != "" || wn != "" {
		start, err1 := strconv.Atoi(ws)
		size, err2 := strconv.Atoi(wn)
		if err1 != nil || err2 != nil || start < 0 || size <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "window_start must be >= 0 and window_size > 0"})
		}
		window = &service.Window{Start: start, Size: size}
	}
	a, err := h.Svc.Availability(c.Request().Context(), id, window)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}
