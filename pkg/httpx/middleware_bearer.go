package httpx

import (
	"net/http"
	"strings"
)

// BearerMiddleware lifts the Authorization bearer token, when present, into
// the request context. It never rejects: whether a token is required is the
// guarded operation's decision, not the transport's. This keeps public
// queries and protected mutations behind the same endpoint.
func BearerMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz != "" && strings.HasPrefix(authz, "Bearer ") {
				raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
				if raw != "" {
					r = r.WithContext(WithBearerToken(r.Context(), raw))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
