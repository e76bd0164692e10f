package opentelemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	libCommons "github.com/LerianStudio/docker-api/pkg"
	constant "github.com/LerianStudio/docker-api/pkg/constants"
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const defaultExportTimeout = 10 * time.Second

var (
	// ErrNilTelemetryConfig indicates that nil config was provided to InitializeTelemetryWithError.
	ErrNilTelemetryConfig = errors.New("telemetry config cannot be nil")
	// ErrNilTelemetryLogger indicates that config.Logger is nil.
	ErrNilTelemetryLogger = errors.New("telemetry config logger cannot be nil")
)

// TelemetryConfig holds the inputs needed to build the tracer provider.
type TelemetryConfig struct {
	LibraryName               string
	ServiceName               string
	ServiceVersion            string
	DeploymentEnv             string
	CollectorExporterEndpoint string
	EnableTelemetry           bool
	Logger                    log.Logger
}

// Telemetry owns the tracer and logger providers and their exporters.
// LoggerProvider is nil while telemetry is turned off.
type Telemetry struct {
	TelemetryConfig
	TracerProvider *sdktrace.TracerProvider
	LoggerProvider *sdklog.LoggerProvider
	shutdown       func(ctx context.Context)
}

func (tl *TelemetryConfig) newResource() *sdkresource.Resource {
	return sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(tl.ServiceName),
		semconv.ServiceVersion(tl.ServiceVersion),
		semconv.DeploymentEnvironment(tl.DeploymentEnv),
		semconv.TelemetrySDKName(constant.TelemetrySDKName),
		semconv.TelemetrySDKLanguageGo,
	)
}

func (tl *TelemetryConfig) newTracerExporter(ctx context.Context) (*otlptrace.Exporter, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(tl.CollectorExporterEndpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithTimeout(libCommons.GetenvDurationOrDefault("OTEL_EXPORTER_OTLP_TIMEOUT", defaultExportTimeout)),
	)
	if err != nil {
		return nil, err
	}

	return exporter, nil
}

func (tl *TelemetryConfig) newLoggerExporter(ctx context.Context) (*otlploggrpc.Exporter, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(tl.CollectorExporterEndpoint),
		otlploggrpc.WithInsecure(),
		otlploggrpc.WithTimeout(libCommons.GetenvDurationOrDefault("OTEL_EXPORTER_OTLP_TIMEOUT", defaultExportTimeout)),
	)
	if err != nil {
		return nil, err
	}

	return exporter, nil
}

func (tl *TelemetryConfig) newLoggerProvider(rsc *sdkresource.Resource, exp sdklog.Exporter) *sdklog.LoggerProvider {
	return sdklog.NewLoggerProvider(
		sdklog.WithResource(rsc),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
	)
}

// InitializeTelemetryWithError builds the tracer and logger providers and
// installs them, together with the W3C trace-context propagator, as the global
// defaults. The zap logger's otelzap core writes to the global logger provider.
//
// With EnableTelemetry off the tracer provider records spans locally, no
// logger provider is installed and nothing is exported.
func InitializeTelemetryWithError(cfg *TelemetryConfig) (*Telemetry, error) {
	if cfg == nil {
		return nil, ErrNilTelemetryConfig
	}

	if cfg.Logger == nil {
		return nil, ErrNilTelemetryLogger
	}

	ctx := context.Background()
	l := cfg.Logger

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if !cfg.EnableTelemetry {
		l.Log(ctx, log.LevelWarn, "Telemetry turned off")

		tp := sdktrace.NewTracerProvider(sdktrace.WithResource(cfg.newResource()))
		otel.SetTracerProvider(tp)

		return &Telemetry{
			TelemetryConfig: *cfg,
			TracerProvider:  tp,
			shutdown: func(ctx context.Context) {
				_ = tp.Shutdown(ctx)
			},
		}, nil
	}

	l.Log(ctx, log.LevelInfo, "Initializing telemetry...", log.String("endpoint", cfg.CollectorExporterEndpoint))

	exp, err := cfg.newTracerExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't initialize tracer exporter: %w", err)
	}

	lExp, err := cfg.newLoggerExporter(ctx)
	if err != nil {
		_ = exp.Shutdown(ctx)

		return nil, fmt.Errorf("can't initialize logger exporter: %w", err)
	}

	rsc := cfg.newResource()

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(rsc),
	)
	otel.SetTracerProvider(tp)

	lp := cfg.newLoggerProvider(rsc, lExp)
	global.SetLoggerProvider(lp)

	shutdownHandler := func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			l.Log(ctx, log.LevelError, "can't shutdown tracer provider", log.Err(err))
		}

		if err := lp.Shutdown(ctx); err != nil {
			l.Log(ctx, log.LevelError, "can't shutdown logger provider", log.Err(err))
		}

		if err := exp.Shutdown(ctx); err != nil {
			l.Log(ctx, log.LevelError, "can't shutdown tracer exporter", log.Err(err))
		}
	}

	l.Log(ctx, log.LevelInfo, "Telemetry initialized")

	return &Telemetry{
		TelemetryConfig: *cfg,
		TracerProvider:  tp,
		LoggerProvider:  lp,
		shutdown:        shutdownHandler,
	}, nil
}

// Tracer returns a tracer named after the configured library.
//
//nolint:ireturn
func (tl *Telemetry) Tracer() trace.Tracer {
	if tl == nil || tl.TracerProvider == nil {
		return otel.Tracer(constant.TelemetrySDKName)
	}

	return tl.TracerProvider.Tracer(tl.LibraryName)
}

// ShutdownTelemetry flushes and stops the tracer provider and exporter.
func (tl *Telemetry) ShutdownTelemetry(ctx context.Context) {
	if tl == nil || tl.shutdown == nil {
		return
	}

	tl.shutdown(ctx)
}

// HandleSpanError marks span as failed and records err on it.
func HandleSpanError(span trace.Span, message string, err error) {
	if span == nil || err == nil {
		return
	}

	span.SetStatus(codes.Error, message+": "+err.Error())
	span.RecordError(err)
}

// HandleSpanEvent adds a named event with attributes to span.
func HandleSpanEvent(span trace.Span, eventName string, attributes ...attribute.KeyValue) {
	if span == nil {
		return
	}

	span.AddEvent(eventName, trace.WithAttributes(attributes...))
}

// ExtractHTTPContext returns the request's user context enriched with any
// trace context carried by the incoming headers.
func ExtractHTTPContext(c *fiber.Ctx) context.Context {
	carrier := propagation.HeaderCarrier{}

	c.Request().Header.VisitAll(func(key, value []byte) {
		carrier.Set(string(key), string(value))
	})

	return otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)
}
