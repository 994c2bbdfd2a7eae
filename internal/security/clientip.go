package security

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ipHeaders in the order they are trusted. X-Forwarded-For comes first
// because every proxy in the chain appends to it; the remainder cover
// platforms that set their own single-value header.
var ipHeaders = []string{
	"X-Forwarded-For",
	"X-Real-Ip",
	"X-Client-Ip",
	"Fly-Client-Ip",
}

// ClientIP extracts the caller address from proxy headers. For comma-joined
// lists only the first entry counts, that is the original client. Returns
// "unknown" when no header is present, which then acts as a shared
// rate-limit key for headerless traffic.
func ClientIP(c *fiber.Ctx) string {
	for _, header := range ipHeaders {
		value := c.Get(header)
		if value == "" {
			continue
		}
		if idx := strings.Index(value, ","); idx >= 0 {
			value = value[:idx]
		}
		if ip := strings.TrimSpace(value); ip != "" {
			return ip
		}
	}
	return "unknown"
}
