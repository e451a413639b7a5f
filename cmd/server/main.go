// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/content-render-service/internal/adapters/http"
	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/content-render-service/internal/adapters/store/memory"
	"github.com/jsamuelsen11/content-render-service/internal/app"
	"github.com/jsamuelsen11/content-render-service/internal/binding"
	"github.com/jsamuelsen11/content-render-service/internal/platform/config"
	"github.com/jsamuelsen11/content-render-service/internal/platform/health"
	"github.com/jsamuelsen11/content-render-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/content-render-service/internal/platform/logging"
	"github.com/jsamuelsen11/content-render-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/content-render-service/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	startupRefreshTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*httpclient.Client](injector))
	registry.Register(do.MustInvoke[*memory.Store](injector))
	registry.Register(do.MustInvoke[*health.Flag](injector))

	// Populate the index before accepting traffic, then keep it fresh.
	svc := do.MustInvoke[ports.ContentService](injector)
	if cfg.Content.RefreshOnStart {
		refreshCtx, cancel := context.WithTimeout(ctx, startupRefreshTimeout)
		indexed, err := svc.Refresh(refreshCtx)
		cancel()
		if err != nil {
			logger.Warn("startup index refresh failed; readiness stays down until the next attempt",
				slog.Any("error", err))
		} else {
			logger.Info("content index populated", slog.Int("indexed", indexed))
		}
	}

	refreshCtx, stopRefresh := context.WithCancel(ctx)
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		runPeriodicRefresh(refreshCtx, svc, cfg.Content.RefreshInterval, logger)
	}()

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		stopRefresh()
		<-refreshDone
		return fmt.Errorf("server failed: %w", err)
	}

	// Stop the background refresh loop.
	stopRefresh()
	<-refreshDone

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// runPeriodicRefresh rebuilds the content index at the configured interval
// until the context is cancelled. Failures keep the previous snapshot.
func runPeriodicRefresh(ctx context.Context, svc ports.ContentService, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			indexed, err := svc.Refresh(ctx)
			if err != nil {
				logger.Error("periodic index refresh failed", slog.Any("error", err))
				continue
			}
			logger.Debug("content index refreshed", slog.Int("indexed", indexed))
		}
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "content-api", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ContentAPIClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewContentClient(client, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*memory.Store, error) {
		return memory.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ContentService, error) {
		index := do.MustInvoke[*memory.Store](i)
		client := do.MustInvoke[ports.ContentAPIClient](i)
		return app.NewContentService(index, client, cfg.Content.FanoutWorkers, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	// Tripped when a binding-failure observer requests an application
	// restart; the readiness probe then reports not-ready so the
	// orchestrator recycles the instance.
	do.Provide(injector, func(_ do.Injector) (*health.Flag, error) {
		return health.NewFlag("model-binding"), nil
	})

	do.Provide(injector, func(i do.Injector) (*binding.Resolver, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		restartFlag := do.MustInvoke[*health.Flag](i)

		return binding.NewResolver(logger,
			binding.WithObserver(binding.LogObserver(logger)),
			binding.WithMetrics(metrics),
			binding.WithRestartHandler(func() {
				restartFlag.Trip(errors.New("model binding observer requested restart"))
			}),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ContentHandler, error) {
		svc := do.MustInvoke[ports.ContentService](i)
		return handlers.NewContentHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.RenderHandler, error) {
		resolver := do.MustInvoke[*binding.Resolver](i)
		return handlers.NewRenderHandler(resolver), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		contentH := do.MustInvoke[*handlers.ContentHandler](i)
		renderH := do.MustInvoke[*handlers.RenderHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		svc := do.MustInvoke[ports.ContentService](i)

		return adapthttp.NewRouter(contentH, renderH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.RequestCache(),
			middleware.RouteContent(svc),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
