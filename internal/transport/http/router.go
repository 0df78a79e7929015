// Package httptransport assembles the public HTTP surface: health and metrics
// endpoints plus the operator API under /v1.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyticshandler "civreg/internal/analytics/handler"
	authhandler "civreg/internal/authentication/handler"
	"civreg/internal/platform/metrics"
	platformmw "civreg/internal/platform/middleware"
	ratelimitmw "civreg/internal/ratelimit/middleware"
	registryhandler "civreg/internal/registry/handler"
	"civreg/pkg/platform/httputil"
	auth "civreg/pkg/platform/middleware/auth"
	metadata "civreg/pkg/platform/middleware/metadata"
	request "civreg/pkg/platform/middleware/request"
	"civreg/pkg/platform/middleware/requesttime"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps is everything the router mounts.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Operators      auth.OperatorValidator
	Registry       *registryhandler.Handler
	Authentication *authhandler.Handler
	Analytics      *analyticshandler.Handler
	RateLimit      *ratelimitmw.Middleware
	AuthPerMinute  int
	RequestTimeout time.Duration
	HealthChecks   map[string]HealthCheck
}

const (
	healthTimeout         = 2 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)

	r.Get("/healthz", healthHandler(d.HealthChecks))
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(metadata.ClientMetadata)
		v1.Use(requesttime.Middleware)
		v1.Use(request.Logger(d.Logger))
		v1.Use(request.Timeout(d.RequestTimeout))
		v1.Use(request.ContentTypeJSON)
		v1.Use(platformmw.LatencyMiddleware(d.Metrics))
		v1.Use(auth.RequireOperator(d.Operators, d.Logger))

		d.Registry.Register(v1)
		d.Analytics.Register(v1)
		v1.Group(func(limited chi.Router) {
			if d.RateLimit != nil {
				limited.Use(d.RateLimit.PerIP("authenticate", d.AuthPerMinute, time.Minute))
			}
			d.Authentication.Register(limited)
		})
	})
	return r
}

type healthResponse struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var failed []string
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed = append(failed, name)
			}
		}
		if len(failed) > 0 {
			sort.Strings(failed)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Failed: failed})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
