package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/trainer-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/trainer-scheduler/internal/db"
	"github.com/BruksfildServices01/trainer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/trainer-scheduler/internal/notify"
	"github.com/BruksfildServices01/trainer-scheduler/internal/observability"
	"github.com/BruksfildServices01/trainer-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	sinks := []notify.Sink{
		notify.NewAuditSink(db),
		notify.NewLogSink(logger),
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sinks = append(sinks, notify.ConnectRedisSink(context.Background(), rdb, cfg.RedisChannel, logger))
	}

	dispatcher := notify.NewDispatcher(logger, 0, sinks...)

	// ======================================================
	// METRICS
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics("", registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:      db,
		Config:  cfg,
		Events:  dispatcher,
		Logger:  logger,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := dispatcher.Close(ctx); err != nil {
		logger.Error("notification drain", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("server stopped")
}
