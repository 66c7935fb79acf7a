package httpx

import (
	"context"
	"net/http"
)

// Middleware is a composable http.Handler wrapper.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with the given middlewares. The first middleware listed is
// the outermost, so it sees the request first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type ctxKey string

const ctxKeyBearerToken ctxKey = "bearer_token"

// WithBearerToken stores the raw bearer token on the context.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyBearerToken, token)
}

// BearerFromContext returns the raw bearer token carried by the context, if
// any. An empty string means the caller presented no credentials.
func BearerFromContext(ctx context.Context) string {
	if tok, ok := ctx.Value(ctxKeyBearerToken).(string); ok {
		return tok
	}
	return ""
}
