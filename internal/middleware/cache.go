package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seat-booking/internal/config"
)

// captureWriter tees the response into buf, up to limit bytes, while it is
// written to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// truncated reports whether the body outgrew the capture limit.
func (cw *captureWriter) truncated() bool {
	return cw.limit > 0 && cw.size > cw.limit
}

// cacheKeyFrom returns "<prefix>:<venue id>:<sha1 of route[?query]>".  The
// venue id is parsed and re-formatted so "01" and "1" share the prefix that
// service.CacheRefresher purges, and the route template keeps the hash free
// of the raw id.  ok is false when the id is not a number.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) (key string, ok bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return "", false
	}
	r := c.Request()
	route := c.Path()
	if route == "" {
		route = r.URL.Path
	}
	target := r.Method + " " + route
	if cfg.IncludeQuery && r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	prefix := cfg.VenueKeyPrefix(strconv.FormatUint(id, 10))
	return fmt.Sprintf("%s%x", prefix, sha1.Sum([]byte(target))), true
}

// encodePayload packs a response as
// [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Grow(8 + len(hdrJSON) + len(body))
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(status))
	binary.BigEndian.PutUint32(head[4:8], uint32(len(hdrJSON)))
	out.Write(head[:])
	out.Write(hdrJSON)
	out.Write(body)
	return out.Bytes(), nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	end := 8 + int(binary.BigEndian.Uint32(bs[4:8]))
	if end > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if end > 8 {
		if err := json.Unmarshal(bs[8:end], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[end:], true
}

// replay writes a cached response to the client.
func replay(c echo.Context, status int, hdr http.Header, body []byte) error {
	h := c.Response().Header()
	for k, vals := range hdr {
		if strings.EqualFold(k, "Content-Length") || strings.EqualFold(k, "X-Cache") {
			continue
		}
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	h.Set("X-Cache", "HIT")
	c.Response().WriteHeader(status)
	_, err := c.Response().Write(body)
	return err
}

// NewRedisCache caches 200 seat map responses in Redis.  The booking service
// purges a venue's entries after every commit.  A read rendered before a
// commit may still store its response after that purge, so TTL is the upper
// bound on staleness.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key, ok := cacheKeyFrom(cfg, c)
			if !ok {
				return next(c)
			}

			bs, err := rdb.Get(c.Request().Context(), key).Bytes()
			switch {
			case err == nil:
				if status, hdr, body, ok := decodePayload(bs); ok {
					return replay(c, status, hdr, body)
				}
			case err != redis.Nil:
				c.Logger().Warnf("seatmap cache: get %s: %v", key, err)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.truncated() {
				return nil
			}
			payload, err := encodePayload(cw.status, c.Response().Header().Clone(), cw.buf.Bytes())
			if err != nil {
				return nil
			}
			// the request context may already be cancelled by now
			if err := rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
				c.Logger().Warnf("seatmap cache: set %s: %v", key, err)
			}
			return nil
		}
	}
}
