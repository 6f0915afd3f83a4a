package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables

	"github.com/iliyamo/seat-booking/internal/seating"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are optional: when DBHost is
// empty every venue uses the default layout and no MySQL connection is made.
type Config struct {
	Env              string         // application environment (e.g. "dev", "prod")
	Port             string         // HTTP port to listen on
	JWTSecret        string         // secret used to verify owner tokens
	DefaultVenueName string         // display name of the built-in venue
	Layout           seating.Layout // layout used when a venue has no stored layout
	DBUser           string         // database username
	DBPass           string         // database password (optional)
	DBHost           string         // database host address; empty disables MySQL
	DBPort           string         // database port number
	DBName           string         // database name
	EventsEnabled    bool           // publish booking events to RabbitMQ
	ConsumerEnabled  bool           // run the booking log consumer in-process
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  An invalid default
// layout is fatal as well, since every venue session is built from it.
func Load() Config {
	cfg := Config{
		Env:              must("APP_ENV"),    // environment (dev/test/prod)
		Port:             must("APP_PORT"),   // port to bind the HTTP server
		JWTSecret:        must("JWT_SECRET"), // secret used for verifying JWTs
		DefaultVenueName: getenv("DEFAULT_VENUE_NAME", "Main Hall"),
		Layout:           LoadLayout(),
		DBUser:           os.Getenv("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT", "3306"),
		DBName:           os.Getenv("DB_NAME"),
		EventsEnabled:    envBool("BOOKING_EVENTS_ENABLED", false),
		ConsumerEnabled:  envBool("BOOKING_CONSUMER_ENABLED", false),
	}
	if err := ValidateLayout(cfg.Layout); err != nil {
		log.Fatalf("invalid default layout: %v", err)
	}
	return cfg
}

// DatabaseEnabled reports whether venue layouts should be read from MySQL.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
