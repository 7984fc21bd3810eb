package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/grooming-is/schedule-web/internal/app"
	"github.com/grooming-is/schedule-web/internal/config"
	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/internal/observability/metrics"
	"github.com/grooming-is/schedule-web/internal/session"
	"github.com/grooming-is/schedule-web/internal/web"
	"github.com/grooming-is/schedule-web/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting schedule-web",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.GroomAPIURL,
	)

	var store session.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		logger.Info("using in-memory session store")
	}

	m := metrics.NewScheduleMetrics(prometheus.DefaultRegisterer)
	api := groomapi.NewClient(cfg.GroomAPIURL, cfg.GroomAPITimeout, logger.WithComponent("groomapi"))
	gate := session.NewGate(store, cfg.SessionTTL, logger.WithComponent("session"))
	ctrl := app.NewController(api, gate, m, logger.WithComponent("app"))
	handler := web.NewHandler(ctrl, gate, m, logger.WithComponent("web"), cfg.SessionCookie, cfg.Env == "production")

	r := web.NewRouter(web.RouterConfig{
		Handler:        handler,
		Logger:         logger,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
