package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/topicreview-backend/internal/transport/middleware"
)

// Routes bundles the handlers and middleware the router mounts.
type Routes struct {
	Health    *HealthHandler
	Topics    *TopicHandler
	Approvals *ApprovalHandler

	// Common wraps every API route. Probes and metrics bypass it.
	Common middleware.Middleware
	// Limit wraps the endpoints that run queries.
	Limit middleware.Middleware
}

// NewRouter builds the HTTP handler of the service.
func NewRouter(rt Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	api := func(h http.HandlerFunc) http.Handler { return rt.Common(h) }
	limited := func(h http.HandlerFunc) http.Handler { return rt.Common(rt.Limit(h)) }

	mux.Handle("GET /topics", limited(rt.Topics.List))
	mux.Handle("GET /topics/{id}", api(rt.Topics.Get))
	mux.Handle("GET /dashboard", limited(rt.Topics.Dashboard))
	mux.Handle("GET /dashboard/{account}", limited(rt.Topics.Dashboard))
	mux.Handle("POST /approvals/strongest", limited(rt.Approvals.Strongest))
	mux.Handle("POST /approvals/user", limited(rt.Approvals.User))

	return mux
}
