package middleware

import (
	"net/http"

	"github.com/AdminBXVentures/embedbroker/internal/correlation"
)

func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlation.Header)
		if id == "" || len(id) > 64 {
			id = correlation.NewID()
		}
		w.Header().Set(correlation.Header, id)

		ctx := correlation.WithID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
