package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AdminBXVentures/embedbroker/internal/api/presenter"
	"github.com/AdminBXVentures/embedbroker/internal/origin"
)

const (
	allowedMethods  = "POST, OPTIONS"
	allowedHeaders  = "Content-Type, X-Correlation-ID"
	preflightMaxAge = "600"
)

// OriginGate rejects browser requests whose Origin is not on the allow-list.
// Requests without an Origin header (curl, server-to-server) always pass.
// Allowed origins get CORS headers, and preflight requests are answered here.
func OriginGate(allowed origin.AllowList) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Origin")
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			// responses differ per origin, caches must know
			w.Header().Add("Vary", "Origin")

			normalized, ok := allowed.Allows(raw)
			if !ok {
				log.Ctx(r.Context()).Warn().
					Str("origin", raw).
					Msg("origin not allowed")
				presenter.Error(w, r, "origin not allowed", http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", normalized)
			w.Header().Set("Access-Control-Expose-Headers", "X-Correlation-ID")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Max-Age", preflightMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
