package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	analyticshandler "civreg/internal/analytics/handler"
	analyticsmetrics "civreg/internal/analytics/metrics"
	analyticsservice "civreg/internal/analytics/service"
	analyticsstore "civreg/internal/analytics/store"
	authhandler "civreg/internal/authentication/handler"
	authmetrics "civreg/internal/authentication/metrics"
	authservice "civreg/internal/authentication/service"
	authstore "civreg/internal/authentication/store"
	jwttoken "civreg/internal/jwt_token"
	"civreg/internal/platform/config"
	"civreg/internal/platform/httpserver"
	"civreg/internal/platform/logger"
	"civreg/internal/platform/metrics"
	"civreg/internal/platform/postgres"
	"civreg/internal/platform/redis"
	ratelimitmetrics "civreg/internal/ratelimit/metrics"
	ratelimitmw "civreg/internal/ratelimit/middleware"
	"civreg/internal/ratelimit/store/bucket"
	registryhandler "civreg/internal/registry/handler"
	registrymetrics "civreg/internal/registry/metrics"
	registryservice "civreg/internal/registry/service"
	registrystore "civreg/internal/registry/store"
	httptransport "civreg/internal/transport/http"
	"civreg/pkg/platform/circuit"
)

// main wires dependencies, serves the router and drains on SIGINT/SIGTERM.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	router := buildRouter(cfg, log, db, rdb)
	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting civreg", "addr", cfg.Server.Addr, "shared_rate_limit", rdb != nil)
	if err := httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("civreg stopped")
}

func buildRouter(cfg *config.Config, log *slog.Logger, db *sqlx.DB, rdb *redis.Client) http.Handler {
	txRunner := postgres.NewTx(db)

	residents := registrystore.NewPostgresResidentStore(db)
	conflicts := registrystore.NewPostgresConflictStore(db)
	registry := registryservice.New(residents, conflicts,
		registryservice.WithStoreTx(txRunner),
		registryservice.WithLogger(log),
		registryservice.WithMetrics(registrymetrics.New()),
	)

	authentication := authservice.New(
		authstore.NewPostgresCredentialStore(db),
		authstore.NewPostgresAttemptStore(db),
		authservice.WithLogger(log),
		authservice.WithMetrics(authmetrics.New()),
	)

	analytics := analyticsservice.New(analyticsstore.NewPostgresStore(db),
		analyticsservice.WithLogger(log),
		analyticsservice.WithMetrics(analyticsmetrics.New()),
	)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)

	health := map[string]httptransport.HealthCheck{
		"postgres": db.PingContext,
	}

	rlMetrics := ratelimitmetrics.New()
	var limiter ratelimitmw.Limiter = bucket.NewInMemoryBucketStore()
	if rdb != nil {
		limiter = ratelimitmw.NewFallbackLimiter(
			bucket.NewRedisBucketStore(rdb.Client),
			bucket.NewInMemoryBucketStore(),
			circuit.New("ratelimit"),
			log,
			rlMetrics,
		)
		health["redis"] = rdb.Health
	}

	return httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.New(),
		Operators:      jwttoken.NewValidator(jwtService),
		Registry:       registryhandler.New(registry, log),
		Authentication: authhandler.New(authentication, log),
		Analytics:      analyticshandler.New(analytics),
		RateLimit:      ratelimitmw.New(limiter, log, ratelimitmw.WithMetrics(rlMetrics)),
		AuthPerMinute:  cfg.RateLimit.AuthPerMinute,
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthChecks:   health,
	})
}
