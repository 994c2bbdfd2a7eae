package security

import (
	"fmt"
	"time"

	"studyflow-be/internal/pkg/logger"
	"studyflow-be/internal/security/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// Middleware gates every route behind the same four steps: security headers,
// origin check, rate limit, then the handler. Failures short-circuit with the
// headers already applied.
type Middleware struct {
	origins *OriginPolicy
	limiter ratelimit.Limiter
	logger  logger.ILogger
}

func NewMiddleware(origins *OriginPolicy, limiter ratelimit.Limiter, log logger.ILogger) *Middleware {
	return &Middleware{
		origins: origins,
		limiter: limiter,
		logger:  log,
	}
}

// Protect builds the fiber handler chain entry for one route class. The
// class only selects the rate-limit policy; origin and header handling are
// identical everywhere.
func (m *Middleware) Protect(routeClass string) fiber.Handler {
	cfg := ratelimit.ConfigFor(routeClass)

	return func(c *fiber.Ctx) error {
		applySecurityHeaders(c)

		origin := c.Get(fiber.HeaderOrigin)
		corsHeaders := m.origins.CORSHeaders(origin)

		// Preflight fails closed: an unlisted origin gets a 403 with no
		// Access-Control-Allow-Origin header, so the browser blocks the
		// actual request.
		if c.Method() == fiber.MethodOptions {
			if len(corsHeaders) == 0 {
				m.logger.Warn("Security", "Rejected preflight from disallowed origin", map[string]interface{}{
					"origin": origin,
					"path":   c.Path(),
				})
				return c.SendStatus(fiber.StatusForbidden)
			}
			for k, v := range corsHeaders {
				c.Set(k, v)
			}
			return c.SendString("ok")
		}

		if len(corsHeaders) == 0 {
			m.logger.Warn("Security", "Rejected request from disallowed origin", map[string]interface{}{
				"origin": origin,
				"path":   c.Path(),
			})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Origin not allowed",
			})
		}
		for k, v := range corsHeaders {
			c.Set(k, v)
		}

		ip := ClientIP(c)
		decision := m.limiter.Check(c.Context(), ip, cfg)

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Max))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", decision.ResetTime.Unix()))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			m.logger.Warn("Security", "Rate limit exceeded", map[string]interface{}{
				"ip":    ip,
				"class": routeClass,
				"path":  c.Path(),
			})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": cfg.Message,
			})
		}

		if err := c.Next(); err != nil {
			// Client errors (validation, bad params) keep their status and
			// message; everything else gets a generic body with the full
			// detail going to the log only.
			if fiberErr, ok := err.(*fiber.Error); ok && fiberErr.Code < fiber.StatusInternalServerError {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"error": fiberErr.Message,
				})
			}
			m.logger.Error("Security", "Handler error", map[string]interface{}{
				"error": err.Error(),
				"path":  c.Path(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}
		return nil
	}
}
