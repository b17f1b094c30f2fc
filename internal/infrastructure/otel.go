package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "dataniaga-validation"
	ServiceVersion = "1.0.0"
	MeterName      = "dataniaga"
)

// OTelConfig holds OpenTelemetry configuration.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout" or "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the initialized OpenTelemetry providers.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns the default OpenTelemetry configuration.
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		TraceExporter:  "stdout",
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}
}

// InitializeOTel sets up tracing and metrics and registers the global
// providers and propagators.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", GenerateTraceID()),
	)

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing && cfg.TraceExporter != "none" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetTracerProvider(tp)
	}

	if cfg.EnableMetrics {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		providers.PrometheusHTTP = promhttp.Handler()
		otel.SetMeterProvider(mp)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", providers.TracerProvider != nil),
		slog.Bool("metrics_enabled", providers.MeterProvider != nil))

	return providers, nil
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ValidationMetrics are the application-specific instruments recorded by
// the validation service.
type ValidationMetrics struct {
	FilesValidated     metric.Int64Counter
	FilesRejected      metric.Int64Counter
	RowsScanned        metric.Int64Counter
	RowErrors          metric.Int64Counter
	Warnings           metric.Int64Counter
	UploadsForwarded   metric.Int64Counter
	ValidationDuration metric.Float64Histogram
}

// NewValidationMetrics registers the validation instruments on a meter.
func NewValidationMetrics(meter metric.Meter) (*ValidationMetrics, error) {
	filesValidated, err := meter.Int64Counter(
		"validation_files_total",
		metric.WithDescription("Total number of files run through the validation pipeline"),
	)
	if err != nil {
		return nil, err
	}
	filesRejected, err := meter.Int64Counter(
		"validation_files_rejected_total",
		metric.WithDescription("Total number of files rejected before parsing"),
	)
	if err != nil {
		return nil, err
	}
	rowsScanned, err := meter.Int64Counter(
		"validation_rows_scanned_total",
		metric.WithDescription("Total number of data rows scanned"),
	)
	if err != nil {
		return nil, err
	}
	rowErrors, err := meter.Int64Counter(
		"validation_errors_total",
		metric.WithDescription("Total number of validation errors produced"),
	)
	if err != nil {
		return nil, err
	}
	warnings, err := meter.Int64Counter(
		"validation_warnings_total",
		metric.WithDescription("Total number of advisory warnings produced"),
	)
	if err != nil {
		return nil, err
	}
	uploadsForwarded, err := meter.Int64Counter(
		"uploads_forwarded_total",
		metric.WithDescription("Total number of validated files forwarded to the analytics service"),
	)
	if err != nil {
		return nil, err
	}
	validationDuration, err := meter.Float64Histogram(
		"validation_duration_seconds",
		metric.WithDescription("Validation pipeline duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ValidationMetrics{
		FilesValidated:     filesValidated,
		FilesRejected:      filesRejected,
		RowsScanned:        rowsScanned,
		RowErrors:          rowErrors,
		Warnings:           warnings,
		UploadsForwarded:   uploadsForwarded,
		ValidationDuration: validationDuration,
	}, nil
}
