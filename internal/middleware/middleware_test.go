package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/utils"
)

const secret = "test-secret"

func protected(e *echo.Echo, roles ...string) {
	e.GET("/owner", func(c echo.Context) error {
		return c.String(http.StatusOK, userID(c))
	}, JWTAuth(secret), RequireRole(roles...))
}

func doGet(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_RoleAllowed(t *testing.T) {
	e := echo.New()
	protected(e, "OWNER")
	tok, err := utils.NewAccessToken(secret, 7, "OWNER", time.Minute)
	require.NoError(t, err)

	rec := doGet(e, "/owner", tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	e := echo.New()
	protected(e, "OWNER")

	customer, err := utils.NewAccessToken(secret, 7, "CUSTOMER", time.Minute)
	require.NoError(t, err)
	wrongKey, err := utils.NewAccessToken("other", 7, "OWNER", time.Minute)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(secret, 7, "OWNER", -time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(e, "/owner", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, "/owner", wrongKey.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(e, "/owner", expired.Token).Code)
	assert.Equal(t, http.StatusForbidden, doGet(e, "/owner", customer.Token).Code)
}

func TestUserID_Guest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "guest", userID(c))
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	e := echo.New()
	e.GET("/seats", func(c echo.Context) error { return c.String(http.StatusOK, "map") },
		NewRedisCache(config.CacheConfig{Enabled: true}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))

	rec := doGet(e, "/seats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "map", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"free":3}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"free":3}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestCacheKeyFrom(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "seatmap", IncludeQuery: true}
	mk := func(venue, target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(venue)
		key, ok := cacheKeyFrom(cfg, c)
		require.True(t, ok)
		return key
	}
	a := mk("1", "/v1/venues/1/seats")
	assert.Regexp(t, `^seatmap:1:[0-9a-f]{40}$`, a)
	assert.Equal(t, a, mk("1", "/v1/venues/1/seats"))
	assert.NotEqual(t, a, mk("1", "/v1/venues/1/seats?x=1"))
	assert.Regexp(t, `^seatmap:2:`, mk("2", "/v1/venues/2/seats"))
	assert.Regexp(t, `^seatmap:1:`, mk("01", "/v1/venues/01/seats"), "leading zeros share the purged prefix")

	cfg.IncludeQuery = false
	assert.Equal(t, mk("1", "/v1/venues/1/seats"), mk("1", "/v1/venues/1/seats?x=1"))

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/venues/x/seats", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("x")
	_, ok := cacheKeyFrom(cfg, c)
	assert.False(t, ok)
}

func TestCaptureWriter_Limit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("ab"))
	assert.False(t, cw.truncated())
	_, _ = cw.Write([]byte("cde"))
	assert.True(t, cw.truncated())
	assert.Equal(t, "abcde", rec.Body.String())
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/venues/3/bookings", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("3")

	key := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c)
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /v1/venues/:id/bookings 3", key)
}

func TestDecisionRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, decision{}.retryAfterSeconds())
	assert.Equal(t, 1, decision{retry: 1 * time.Millisecond}.retryAfterSeconds())
	assert.Equal(t, 2, decision{retry: 2 * time.Second}.retryAfterSeconds())
	assert.Equal(t, 3, decision{retry: 2001 * time.Millisecond}.retryAfterSeconds())
}

func TestBuildRateKey_Strategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/venues/3/bookings", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("3")

	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:user:guest", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c))
}
