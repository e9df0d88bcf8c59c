package main

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	countryhandler "countryref/internal/country/handler"
	"countryref/internal/country/seed"
	"countryref/internal/platform/health"
	platformmetrics "countryref/internal/platform/metrics"
	"countryref/pkg/platform/middleware/apikey"
	request "countryref/pkg/platform/middleware/request"
	"countryref/pkg/platform/middleware/requesttime"
)

type routerDeps struct {
	handler     *countryhandler.Handler
	httpMetrics *platformmetrics.Metrics
	gatherer    prometheus.Gatherer
	apiKey      string
	status      *seed.Status
	storeCheck  health.Check
	logger      *slog.Logger
}

// newRouter assembles middleware, the country API, /health and /metrics.
// Health and metrics stay reachable without an API key.
func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(request.Recovery(d.logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(d.logger))
	r.Use(requesttime.Middleware)
	r.Use(d.httpMetrics.LatencyMiddleware)
	r.Use(apikey.Require(d.apiKey, d.logger, "/health", "/metrics"))

	r.Get("/health", health.Handler(map[string]health.Check{
		"seeding": seedingCheck(d.status),
		"store":   d.storeCheck,
	}))
	r.Handle("/metrics", platformmetrics.Handler(d.gatherer))

	d.handler.Register(r)
	return r
}

func seedingCheck(status *seed.Status) health.Check {
	return func(context.Context) health.Result {
		snap := status.Snapshot()
		details := map[string]any{"seeding": string(snap.State)}
		if snap.State == seed.StateComplete {
			details["stored"] = snap.Stored
		}
		if snap.Error != "" {
			details["error"] = snap.Error
		}
		if snap.Ready() {
			return health.Up(details)
		}
		return health.Down(details)
	}
}
