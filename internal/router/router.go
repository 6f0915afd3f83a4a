package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/handler"
	"github.com/iliyamo/seat-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies.  Currently it
// exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Deps carries what the venue routes need besides their handler.  Rdb may be
// nil, which disables the seat map cache and the booking rate limiter.
type Deps struct {
	JWTSecret string
	Rdb       *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// RegisterVenues registers the booking API under /v1/venues.
//
// Reads and bookings are public.  Seat maps are cached in Redis and purged
// after each booking; booking POSTs pass through the token bucket.  Replacing
// a layout discards every booking of the venue, so it requires an OWNER token.
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler, d Deps) {
	g := e.Group("/v1/venues")
	g.GET("", h.ListVenues)
	g.GET("/:id/seats", h.GetSeatMap, middleware.NewRedisCache(d.Cache, d.Rdb))
	g.GET("/:id/seats/:number", h.GetSeat)
	g.GET("/:id/availability", h.GetAvailability)
	g.POST("/:id/bookings", h.CreateBooking, middleware.NewTokenBucket(d.RateLimit, d.Rdb))
	g.PUT("/:id/layout", h.ReplaceLayout,
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole("OWNER"),
	)
}
