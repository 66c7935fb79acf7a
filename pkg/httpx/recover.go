package httpx

import (
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/hirewire/jobboard/pkg/slogx"
)

// RecoverMiddleware converts handler panics into 500 responses. Panics are
// reported to Sentry when a DSN was configured at startup; sentry-go is a
// no-op otherwise.
func RecoverMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogx.FromContext(r.Context()).Error("panic recovered", "panic", rec)
					sentry.CurrentHub().Recover(rec)

					WriteJSON(w, http.StatusInternalServerError, map[string]string{
						"error": "internal_server_error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
