package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const meterName = "nanovc"

// Providers holds the initialized observability providers a RepoHandler
// binds for the lifetime of one embedding.
type Providers struct {
	// Tracer is the named tracer a caller's context may already carry spans
	// from; nanovc never starts spans of its own, it only reads them.
	Tracer trace.Tracer

	// Meter is the named meter RED instruments are created from.
	Meter metric.Meter

	// Logger is the trace-aware structured logger.
	Logger *slog.Logger

	// Shutdown flushes pending metrics and releases exporter resources.
	Shutdown func(ctx context.Context) error

	// MetricsHandler serves the Prometheus scrape endpoint when
	// Config.PrometheusEnabled was set; nil otherwise.
	MetricsHandler http.Handler
}

// Init builds Providers from cfg. When cfg.PrometheusEnabled is false, Meter
// is backed by a no-op provider with zero export overhead; nanovc never
// requires a working metrics pipeline to operate correctly.
func Init(cfg Config) (Providers, error) {
	logger := buildLogger(cfg)

	if !cfg.PrometheusEnabled {
		return Providers{
			Tracer:   nooptrace.NewTracerProvider().Tracer(meterName),
			Meter:    noopmetric.NewMeterProvider().Meter(meterName),
			Logger:   logger,
			Shutdown: noopShutdown,
		}, nil
	}

	res, err := buildResource(cfg)
	if err != nil {
		return Providers{}, err
	}

	reader, metricsHandler, err := newPrometheusReader()
	if err != nil {
		return Providers{}, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	shutdown := func(ctx context.Context) error {
		timeoutDur := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if timeoutDur <= 0 {
			timeoutDur = time.Duration(defaultShutdownTimeoutSec) * time.Second
		}

		deadlineCtx, cancel := context.WithTimeout(ctx, timeoutDur)
		defer cancel()

		return mp.Shutdown(deadlineCtx) //nolint:wrapcheck // shutdown error returned verbatim to caller
	}

	return Providers{
		Tracer:         nooptrace.NewTracerProvider().Tracer(meterName),
		Meter:          mp.Meter(meterName),
		Logger:         logger,
		Shutdown:       shutdown,
		MetricsHandler: metricsHandler,
	}, nil
}

func buildResource(cfg Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironment(cfg.Environment)))
	}

	res, err := resource.New(context.Background(), attrs...)
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	return res, nil
}

func noopShutdown(_ context.Context) error { return nil }

func buildLogger(cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(NewTracingHandler(inner, cfg.ServiceName, cfg.Environment))
}
