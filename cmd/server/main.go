package main // Entry point package

import (
	"context"
	"log" // Logging library
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/seat-booking/internal/config"   // Internal config loader
	"github.com/iliyamo/seat-booking/internal/database" // MySQL connection for venue layouts
	"github.com/iliyamo/seat-booking/internal/handler"
	"github.com/iliyamo/seat-booking/internal/queue"
	"github.com/iliyamo/seat-booking/internal/repository"
	"github.com/iliyamo/seat-booking/internal/router" // Internal router setup
	"github.com/iliyamo/seat-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load() // Load environment config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var venues repository.VenueStore
	if cfg.DatabaseEnabled() {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if err := database.SeedDefaultVenue(ctx, db, repository.DefaultVenueID, cfg.DefaultVenueName, cfg.Layout); err != nil {
			log.Fatalf("database: %v", err)
		}
		venues = repository.NewVenueRepo(db)
	} else {
		log.Printf("DB_HOST not set; serving venue %d with layout %+v from memory", repository.DefaultVenueID, cfg.Layout)
		venues = repository.NewStaticVenues(cfg.DefaultVenueName, cfg.Layout)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	cacheCfg := config.LoadCacheConfig()

	var notifier service.Notifier = service.LogNotifier{}
	if cfg.EventsEnabled {
		notifier = service.NewAMQPNotifier(config.AMQPURL())
	}
	if cfg.ConsumerEnabled {
		go func() {
			if err := queue.StartBookingConsumer(ctx, config.AMQPURL(), "logs"); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	svc := service.NewBookingService(venues, notifier, service.NewCacheRefresher(rdb, cacheCfg))

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = router.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("http: %s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e) // Register application routes
	router.RegisterVenues(e, handler.NewVenueHandler(svc), router.Deps{
		JWTSecret: cfg.JWTSecret,
		Rdb:       rdb,
		Cache:     cacheCfg,
		RateLimit: config.LoadRateLimitConfig(),
	})

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil && ctx.Err() == nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
