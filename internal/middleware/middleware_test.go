package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/config"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/metrics"
	"github.com/iliyamo/portfolio-api/internal/model"
)

type users map[uint64]model.User

func (u users) FindByUsername(_ context.Context, name string) (model.User, bool, error) {
	for _, v := range u {
		if v.Username == name {
			return v, true, nil
		}
	}
	return model.User{}, false, nil
}

func (u users) FindByID(_ context.Context, id uint64) (model.User, bool, error) {
	v, ok := u[id]
	return v, ok, nil
}

func newAuth() *auth.Authenticator {
	store := users{
		1: {ID: 1, Username: "alice", Role: model.RoleUser},
		3: {ID: 3, Username: "root", Role: model.RoleAdmin},
	}
	return auth.NewAuthenticator(auth.NewTokenService("middleware-test-secret", time.Hour), store)
}

func bearer(t *testing.T, a *auth.Authenticator, id uint64) string {
	t.Helper()
	tok, err := a.Tokens().Issue(model.User{ID: id})
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

// whoami echoes the resolved user so tests can see what the middleware set.
func whoami(c echo.Context) error {
	if u := CurrentUser(c); u != nil {
		return c.String(http.StatusOK, u.Username)
	}
	return c.String(http.StatusOK, "anonymous")
}

func serve(mw echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/x", whoami, mw)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentify(t *testing.T) {
	a := newAuth()
	mw := Identify(a, logging.Discard())

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "anonymous"},
		{"garbage token", "Bearer nope", "anonymous"},
		{"wrong scheme", "Basic YWxpY2U6cHc=", "anonymous"},
		{"deleted user", bearer(t, a, 77), "anonymous"},
		{"valid token", bearer(t, a, 1), "alice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(mw, tc.header)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func TestRequireUser(t *testing.T) {
	a := newAuth()
	mw := RequireUser(a, logging.Discard())

	rec := serve(mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())

	expired, err := a.Tokens().WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(model.User{ID: 1})
	require.NoError(t, err)
	rec = serve(mw, "Bearer "+expired.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(mw, bearer(t, a, 1))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	a := newAuth()
	mw := RequireAdmin(a, logging.Discard())

	assert.Equal(t, http.StatusUnauthorized, serve(mw, "").Code)

	rec := serve(mw, bearer(t, a, 1))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"admin role required"}`, rec.Body.String())

	rec = serve(mw, bearer(t, a, 3))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root", rec.Body.String())
}

func TestTokenBucket_PassThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Hour, Prefix: "rl"}

	// A nil client and a disabled limiter both leave requests alone.
	for _, mw := range []echo.MiddlewareFunc{
		NewTokenBucket(cfg, nil, logging.Discard()),
		NewTokenBucket(config.RateLimitConfig{Enabled: false}, redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), logging.Discard()),
	} {
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(mw, "").Code)
		}
	}
}

func TestTokenBucket_FailsOpenWhenRedisIsDown(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Hour, Prefix: "rl"}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	mw := NewTokenBucket(cfg, rdb, logging.Discard())
	for i := 0; i < 3; i++ {
		rec := serve(mw, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/auth/login")

	cases := map[string]string{
		"ip":       "rl:ip:203.0.113.9",
		"route":    "rl:route:POST /auth/login",
		"ip_route": "rl:ip:203.0.113.9:route:POST /auth/login",
		"user":     "rl:user:anon",
		"":         "rl:ip:203.0.113.9:user:anon:route:POST /auth/login",
	}
	for strategy, want := range cases {
		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		assert.Equal(t, want, got, strategy)
	}

	SetUser(c, &model.User{ID: 42})
	assert.Equal(t, "rl:user:42", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(7), asInt64(int64(7)))
	assert.Equal(t, int64(7), asInt64(7))
	assert.Equal(t, int64(7), asInt64(7.9))
	assert.Equal(t, int64(7), asInt64("7"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestMetrics_CountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/metrics-probe/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/metrics-probe/:id", "2xx"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-probe/5", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/metrics-probe/:id", "2xx"))
	assert.Equal(t, before+1, after)
}
