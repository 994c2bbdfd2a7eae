package security

import (
	"net/http/httptest"
	"testing"

	"studyflow-be/internal/pkg/logger"
	"studyflow-be/internal/security/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newTestApp(routeClass string) *fiber.App {
	mw := NewMiddleware(NewOriginPolicy("development"), ratelimit.NewMemoryLimiter(), nopLogger{})

	app := fiber.New()
	app.Use(mw.Protect(routeClass))
	app.Post("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestMiddlewareRejectsDisallowedOrigin(t *testing.T) {
	app := newTestApp(ratelimit.ClassGeneral)

	req := httptest.NewRequest("POST", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMiddlewareRejectsMissingOrigin(t *testing.T) {
	app := newTestApp(ratelimit.ClassGeneral)

	req := httptest.NewRequest("POST", "/ping", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMiddlewarePreflightFailsClosed(t *testing.T) {
	app := newTestApp(ratelimit.ClassGeneral)

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	// Security headers still apply on rejection.
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestMiddlewarePreflightAllowedOrigin(t *testing.T) {
	app := newTestApp(ratelimit.ClassGeneral)

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMiddlewareSetsSecurityHeaders(t *testing.T) {
	app := newTestApp(ratelimit.ClassGeneral)

	req := httptest.NewRequest("POST", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
}

func TestMiddlewareRateLimits(t *testing.T) {
	// Auth class has the smallest budget (10 per window).
	app := newTestApp(ratelimit.ClassAuth)

	var lastStatus int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest("POST", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("X-Forwarded-For", "10.0.0.1")

		resp, err := app.Test(req)
		require.NoError(t, err)
		lastStatus = resp.StatusCode

		if i == 10 {
			assert.NotEmpty(t, resp.Header.Get("Retry-After"))
			assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, fiber.StatusTooManyRequests, lastStatus)
}

func TestClientIPHeaderOrder(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = ClientIP(c)
		return nil
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
	req.Header.Set("X-Real-Ip", "198.51.100.9")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-Ip", "198.51.100.9")
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.9", got)

	req = httptest.NewRequest("GET", "/", nil)
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "unknown", got)
}
