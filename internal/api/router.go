package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "hookdash/internal/api/context"
	"hookdash/internal/api/handlers"
	"hookdash/internal/api/middleware"
)

type Dependencies struct {
	WebhookHandler *handlers.WebhookHandler
	EventHandler   *handlers.EventHandler
	StatsHandler   *handlers.StatsHandler
	StreamHandler  *handlers.StreamHandler
	HealthHandler  *handlers.HealthHandler
	MetricsHandler *handlers.MetricsHandler
	AuthMiddleware *middleware.AuthMiddleware // nil leaves the read API open
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	rl := deps.RateLimiter

	// read wraps dashboard endpoints: rate limit, then auth when it is
	// configured.
	read := func(handler http.HandlerFunc) httprouter.Handle {
		mws := []func(http.HandlerFunc) http.HandlerFunc{rl.Limit("api_read")}
		if deps.AuthMiddleware != nil {
			mws = append(mws, deps.AuthMiddleware.Handle)
		}
		return chain(handler, mws...)
	}

	// Provider callbacks
	router.POST("/api/webhook", chain(deps.WebhookHandler.Receive, rl.Limit("ingest")))

	// Event inspection
	router.GET("/api/v1/events", read(deps.EventHandler.List))
	router.GET("/api/v1/events/:event_id", read(deps.EventHandler.Get))

	// Live feed (WebSocket)
	router.GET("/api/v1/stream", read(deps.StreamHandler.Events))

	// Aggregations
	router.GET("/api/v1/stats/recent", read(deps.StatsHandler.Recent))
	router.GET("/api/v1/stats/minutely", read(deps.StatsHandler.Minutely))
	router.GET("/api/v1/stats/snapshots", read(deps.StatsHandler.Snapshots))

	// Operational
	router.GET("/healthz", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
