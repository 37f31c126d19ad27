package server

import (
	"net/http"
	"strings"

	"github.com/agbru/harmcalc/internal/config"
)

// SecurityConfig holds the hardening knobs of the HTTP API.
type SecurityConfig struct {
	// EnableCORS toggles cross-origin resource sharing headers.
	EnableCORS bool

	// AllowedOrigins lists the origins allowed to call the API. The
	// wildcard "*" admits any origin.
	AllowedOrigins []string

	// AllowedMethods lists the HTTP methods advertised in CORS responses.
	AllowedMethods []string

	// MaxNValue caps the upper summation bound accepted over HTTP. A single
	// term is cheap, but an unbounded N would let one request pin a CPU for
	// minutes, so remote callers get a ceiling that local runs do not have.
	MaxNValue uint64
}

// DefaultSecurityConfig returns the configuration the server starts with:
// permissive CORS for a read-only API, and the standard N ceiling.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxNValue:      config.MaxNValue,
	}
}

// SecurityMiddleware wraps next with security response headers and CORS
// handling. OPTIONS requests are answered directly with 204 No Content and
// never reach the handler; the API itself is GET-only.
//
// Parameters:
//   - cfg: The security configuration to enforce.
//   - next: The handler invoked for non-preflight requests.
//
// Returns the wrapped handler.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w)

		if cfg.EnableCORS {
			if origin := resolveOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// setSecurityHeaders applies the standard hardening headers for an API that
// serves JSON and must never be embedded or scripted against.
func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
}

// resolveOrigin returns the Access-Control-Allow-Origin value for the given
// request origin, or "" when the origin is not allowed. The wildcard entry
// matches every request, including ones without an Origin header.
func resolveOrigin(allowed []string, origin string) string {
	for _, candidate := range allowed {
		if candidate == "*" {
			return "*"
		}
		if origin != "" && candidate == origin {
			return origin
		}
	}
	return ""
}
