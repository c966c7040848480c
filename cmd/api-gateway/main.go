package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/learning-tracker/api/swagger"
	"github.com/noah-isme/learning-tracker/internal/app/bootstrap"
	"github.com/noah-isme/learning-tracker/internal/handler"
	"github.com/noah-isme/learning-tracker/internal/middleware"
	"github.com/noah-isme/learning-tracker/pkg/config"
	"github.com/noah-isme/learning-tracker/pkg/logger"
	corsmiddleware "github.com/noah-isme/learning-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/learning-tracker/pkg/middleware/requestid"
)

// @title Learning Progress Tracker API
// @version 1.0.0
// @description Student registry, point awards, course statistics and completion notices.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker, err := bootstrap.New(ctx, cfg, logr, os.Stdout)
	if err != nil {
		logr.Sugar().Fatalw("failed to wire tracker", "error", err)
	}
	defer tracker.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(tracker.Metrics))

	metrics := tracker.MetricsHandler()
	r.GET("/health", metrics.Health)
	r.GET("/ready", metrics.Ready)
	if cfg.EnableMetrics {
		r.GET("/metrics", metrics.Prometheus)
	}

	if cfg.EnableDocs && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), tracker.Handlers())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "notify_sink", cfg.Notify.Sink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}
