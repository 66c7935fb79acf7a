package http

import (
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/httpx"
	"github.com/hirewire/jobboard/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	schema       *graphql.Schema
	store        store.Store
	logger       *slog.Logger
	buildVersion string
	startTime    time.Time
}

func NewRouter(schema *graphql.Schema, st store.Store, logger *slog.Logger, buildVersion string) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		schema:       schema,
		store:        st,
		logger:       logger,
		buildVersion: buildVersion,
		startTime:    time.Now(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGraphQL()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGraphQL() {
	// All reads and writes go through the single GraphQL endpoint, so it
	// gets the moderate limit. Authorization is enforced per resolver, not
	// here; the bearer middleware only makes the token available.
	r.Mux.Handle("POST /graphql",
		httpx.Chain(&relay.Handler{Schema: r.schema},
			httpx.BearerMiddleware(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /healthz",
		httpx.Chain(HealthzHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
