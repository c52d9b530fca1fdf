// Package observability configures OpenTelemetry tracing, metrics and logs for the API.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultServiceName is used when Config.ServiceName is empty.
const DefaultServiceName = "todo-api"

const exportTimeout = 10 * time.Second

// Config holds observability configuration.
type Config struct {
	Enabled     bool
	ServiceName string
	// Output receives JSON logs when Enabled is false. Defaults to os.Stdout.
	Output io.Writer
}

func (cfg Config) serviceName() string {
	if cfg.ServiceName == "" {
		return DefaultServiceName
	}
	return cfg.ServiceName
}

// Providers bundles the SDK providers created by Setup.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
	Logger *sdklog.LoggerProvider
	Log    *slog.Logger
}

// Setup creates all three providers and installs them as globals.
// The returned logger is also installed as the slog default.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	tp, err := InitTracerProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mp, err := InitMeterProvider(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}

	lp, logger, err := InitLogger(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, mp.Shutdown(ctx), tp.Shutdown(ctx))
	}

	slog.SetDefault(logger)

	return &Providers{Tracer: tp, Meter: mp, Logger: lp, Log: logger}, nil
}

// Shutdown flushes and stops the providers: logs first, then metrics, then traces.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if err := p.Logger.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("logger provider: %w", err))
	}
	if err := p.Meter.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter provider: %w", err))
	}
	if err := p.Tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer provider: %w", err))
	}
	return errors.Join(errs...)
}

// newResource describes the service: SDK attributes, the service name and any
// OTEL_RESOURCE_ATTRIBUTES / OTEL_SERVICE_NAME values from the environment.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(cfg.serviceName())),
		resource.WithFromEnv(),
	)
	if err != nil {
		// A partial resource is still usable.
		if errors.Is(err, resource.ErrPartialResource) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	return res, nil
}

// InitTracerProvider creates an OTLP/HTTP tracer provider. When disabled it
// returns a provider with no exporter so spans are dropped.
//
// The exporter reads OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS.
func InitTracerProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeterProvider creates an OTLP/HTTP meter provider with a periodic reader.
func InitMeterProvider(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		return mp, nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second),
		)),
	)
	otel.SetMeterProvider(mp)

	return mp, nil
}

// InitLogger returns a logger provider and the slog.Logger to use.
// Disabled: a JSON handler on cfg.Output. Enabled: the otelslog bridge over an OTLP/HTTP exporter.
func InitLogger(ctx context.Context, cfg Config) (*sdklog.LoggerProvider, *slog.Logger, error) {
	if !cfg.Enabled {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		return sdklog.NewLoggerProvider(), slog.New(slog.NewJSONHandler(out, nil)), nil
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := otlploghttp.New(ctx, otlploghttp.WithTimeout(exportTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter,
			sdklog.WithExportTimeout(5*time.Second),
		)),
		sdklog.WithResource(res),
	)

	logger := otelslog.NewLogger(cfg.serviceName(), otelslog.WithLoggerProvider(lp))

	return lp, logger, nil
}
