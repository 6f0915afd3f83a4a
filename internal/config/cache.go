package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheConfig defines settings for the seat map response cache.
// When Enabled is false or no Redis client is configured, caching is disabled.
// Entries are grouped per venue under "<Prefix>:<venue id>:" so a booking
// only purges the maps of its own venue.  TTL bounds how stale a cached map
// can get if a purge is missed.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	IncludeQuery bool // hash the raw query into the key
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.  Defaults
// are used when variables are not set.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		IncludeQuery: getenv("CACHE_KEY_INCLUDE_QUERY", "true") == "true",
		Prefix:       getenv("CACHE_PREFIX", "seatmap"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

// VenueKeyPrefix is the common prefix of every cached response of a venue.
func (c CacheConfig) VenueKeyPrefix(venue string) string {
	return c.Prefix + ":" + venue + ":"
}

// VenuePattern is the SCAN glob matching all cached maps of one venue.
func (c CacheConfig) VenuePattern(venueID uint64) string {
	return c.VenueKeyPrefix(strconv.FormatUint(venueID, 10)) + "*"
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
