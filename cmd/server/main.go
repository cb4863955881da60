package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaigndash/internal/delivery"
	"campaigndash/internal/domain"
	"campaigndash/internal/infrastructure"
	"campaigndash/internal/usecase"
	"campaigndash/pkg/config"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.WithField("analytics_url", cfg.Analytics.BaseURL).Info("Starting server")

	m := metrics.New(prometheus.DefaultRegisterer)

	api := infrastructure.NewAnalyticsClient(cfg.Analytics.BaseURL, infrastructure.ClientOptions{
		Timeout:            cfg.Analytics.RequestTimeout,
		RateLimitPerSecond: cfg.Analytics.RateLimitPerSecond,
		RateLimitBurst:     cfg.Analytics.RateLimitBurst,
	}, log, m)

	dashboard := usecase.NewDashboard(api, usecase.CompareSettings{
		DurationTolerance: cfg.Workflow.DurationTolerance,
		ComparisonType:    domain.ComparisonType(cfg.Workflow.ComparisonType),
	}, log, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboard.Start(ctx)

	router := delivery.NewHTTPRouter(delivery.NewHTTPHandlers(dashboard, log), log, m, delivery.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HandlerTimeout: cfg.Server.HandlerTimeout,
		Gatherer:       prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info("Server exited")
}
