package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gikcare/frontdesk/internal/api/router"
	appconfig "github.com/gikcare/frontdesk/internal/config"
	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/notify"
	"github.com/gikcare/frontdesk/internal/observability/metrics"
	"github.com/gikcare/frontdesk/internal/web"
	"github.com/gikcare/frontdesk/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting frontdesk server",
		"env", cfg.Env,
		"port", cfg.Port,
		"clinic_api", cfg.ClinicAPIBaseURL,
	)

	metricsHandler, viewMetrics, upstreamMetrics := setupMetrics()

	client := clinicapi.NewClient(cfg.ClinicAPIBaseURL, cfg.ClinicAPITimeout, logger)
	client.SetObserver(upstreamMetrics)

	handler := web.NewHandler(client, cfg, logger, notify.WhatsAppNotifier{}, viewMetrics)

	routerCfg := &router.Config{
		Logger:         logger,
		WebHandler:     handler,
		MetricsHandler: metricsHandler,
	}
	r := router.New(routerCfg)

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
	fmt.Println("Server exited gracefully")
}

// setupMetrics builds the process-wide Prometheus registry along with the
// page-render and upstream-call collectors wired into it.
func setupMetrics() (http.Handler, *metrics.ViewMetrics, *metrics.UpstreamMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	viewMetrics := metrics.NewViewMetrics(registry)
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return handler, viewMetrics, upstreamMetrics
}
