package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres/board"
	"github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres/record"
	"github.com/heartmarshall/myenglish-catalog/internal/adapter/provider/freedict"
	"github.com/heartmarshall/myenglish-catalog/internal/adapter/redis/boardcache"
	"github.com/heartmarshall/myenglish-catalog/internal/auth"
	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/service/catalog"
	"github.com/heartmarshall/myenglish-catalog/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-catalog/internal/transport/rest"
)

// Run is the API server entry point. It loads configuration, connects to
// PostgreSQL (and Redis when configured), and serves the catalog API until
// ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	health := rest.NewHealthHandler(pool, Version)

	var cache *boardcache.Cache
	if cfg.Redis.Enabled() {
		cache, err = boardcache.New(ctx, cfg.Redis, logger)
		if err != nil {
			// The cache is optional; the service reads boards from the database.
			logger.Warn("board cache disabled", slog.String("error", err.Error()))
		} else {
			defer cache.Close()
			health.WithComponent("redis", cache)
		}
	}

	svc := newCatalogService(logger, pool, cfg, cache)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Deps{
		Logger:      logger,
		Catalog:     svc,
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Health:      health,
		RateLimiter: limiter,
		Server:      cfg.Server,
		CORS:        cfg.CORS,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

func newCatalogService(logger *slog.Logger, pool *pgxpool.Pool, cfg *config.Config, cache *boardcache.Cache) *catalog.Service {
	var (
		records = record.New(pool)
		boards  = board.New(pool)
		lessons = lesson.New(pool)
		dict    = freedict.New(cfg.Dictionary, logger)
	)

	txm := postgres.NewTxManager(pool)

	if cache == nil {
		return catalog.NewService(logger, records, boards, lessons, txm, dict, nil)
	}
	return catalog.NewService(logger, records, boards, lessons, txm, dict, cache)
}

// serve runs srv until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
