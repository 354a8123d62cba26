package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/heartmarshall/topicreview-backend/internal/accountcache"
	"github.com/heartmarshall/topicreview-backend/internal/auth"
	"github.com/heartmarshall/topicreview-backend/internal/authz"
	"github.com/heartmarshall/topicreview-backend/internal/config"
	"github.com/heartmarshall/topicreview-backend/internal/transport/middleware"
	"github.com/heartmarshall/topicreview-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// services over the database and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Int("query_max_limit", cfg.Query.MaxLimit),
	)
	if !cfg.Query.SearchEnabled() {
		logger.Warn("topic search is disabled", slog.Int("query_max_limit", cfg.Query.MaxLimit))
	}

	c, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0)

	health := rest.NewHealthHandler(BuildVersion(),
		rest.Check{Name: "database", Run: c.Pool.Ping},
		rest.Check{Name: "permissions", Run: c.sqlDB.PingContext},
	)
	handler := rest.NewRouter(rest.Routes{
		Health:    health,
		Topics:    rest.NewTopicHandler(c.Lists, cfg.Query.DefaultPageSize, logger),
		Approvals: rest.NewApprovalHandler(c.Approvals, logger),
		Common: middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID,
			middleware.Auth(logger, jwt, c.Groups),
			middleware.Logger(logger),
			accountcache.Middleware(c.Accounts),
			authz.Middleware(c.Control),
		),
		Limit: limiter.Limit(cfg.RateLimit.QueriesPerMinute),
	})

	srv := NewServer(net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)), handler, cfg.Server, logger)
	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("application stopped")
	return nil
}
