package ratelimit

import (
	"context"
	"time"
)

// Config is one named rate-limit policy, loaded at startup and never mutated.
type Config struct {
	Window  time.Duration
	Max     int
	Message string
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter checks whether the caller identified by key may proceed under cfg.
// Implementations: an in-memory bucket map for single-instance deployments
// and a redis counter shared across instances.
type Limiter interface {
	Check(ctx context.Context, key string, cfg Config) Decision
}

// Route classes select a policy; callers pass these to the middleware.
const (
	ClassGeneral = "general"
	ClassAI      = "ai"
	ClassAuth    = "auth"
	ClassUpload  = "upload"
)

var configs = map[string]Config{
	ClassGeneral: {Window: 15 * time.Minute, Max: 100, Message: "Too many requests, please try again later."},
	ClassAI:      {Window: 15 * time.Minute, Max: 20, Message: "Too many AI requests, please slow down."},
	ClassAuth:    {Window: 15 * time.Minute, Max: 10, Message: "Too many authentication attempts, please try again later."},
	ClassUpload:  {Window: 1 * time.Hour, Max: 50, Message: "Upload limit reached, please try again later."},
}

// ConfigFor returns the policy for a route class, falling back to the
// general policy for unknown classes.
func ConfigFor(routeClass string) Config {
	if cfg, ok := configs[routeClass]; ok {
		return cfg
	}
	return configs[ClassGeneral]
}
