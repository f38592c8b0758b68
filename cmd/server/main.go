// Command server starts the AI Test Case Generator front end.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/backend"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/extractor"
	httpserver "github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/httpserver"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/observability"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/app"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/config"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, backend and extraction instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// The backend base URL is fixed for the lifetime of the process.
	backendClient := backend.New(cfg.BackendBaseURL, cfg.GenerateTimeout, cfg.HealthTimeout)
	slog.Info("backend client initialized",
		slog.String("base_url", cfg.BackendBaseURL),
		slog.Duration("generate_timeout", cfg.GenerateTimeout))

	docSvc := usecase.NewDocumentService(extractor.New())
	genSvc := usecase.NewGenerateService(backendClient)

	srv := httpserver.NewServer(cfg, docSvc, genSvc, backendClient)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
