package security

import "regexp"

// OriginPolicy decides which browser origins may call the API. The allowlist
// is fixed per environment; preview deployments match by pattern instead of
// enumeration because their hostnames are generated per branch.
type OriginPolicy struct {
	allowed map[string]struct{}
	preview *regexp.Regexp
}

var previewPattern = regexp.MustCompile(`^https://studyflow-[a-z0-9-]+\.vercel\.app$`)

func NewOriginPolicy(environment string) *OriginPolicy {
	var origins []string
	var preview *regexp.Regexp

	switch environment {
	case "production":
		origins = []string{
			"https://studyflow.app",
			"https://www.studyflow.app",
		}
		preview = previewPattern
	case "staging":
		origins = []string{
			"https://staging.studyflow.app",
		}
		preview = previewPattern
	default:
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
		preview = previewPattern
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return &OriginPolicy{allowed: allowed, preview: preview}
}

// Allowed reports whether the given Origin header value may receive CORS
// credentials. An empty origin is never allowed.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.allowed[origin]; ok {
		return true
	}
	return p.preview != nil && p.preview.MatchString(origin)
}

// CORSHeaders returns the response headers for an allowed origin, or an empty
// map when the origin is not allowed. Callers must treat the empty map as a
// rejection and never fall back to a wildcard.
func (p *OriginPolicy) CORSHeaders(origin string) map[string]string {
	if !p.Allowed(origin) {
		return map[string]string{}
	}
	return map[string]string{
		"Access-Control-Allow-Origin":  origin,
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Authorization, Content-Type, X-Client-Info, Apikey",
		"Access-Control-Max-Age":       "86400",
		"Vary":                         "Origin",
	}
}
