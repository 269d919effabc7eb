package apm

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/agentarena/arena-terminal/internal/logger"
)

// Provider names a span exporter backend.
type Provider string

const (
	ConsoleProvider Provider = "CONSOLE_PROVIDER"
	ZipkinProvider  Provider = "ZIPKIN_PROVIDER"
	OTLPProvider    Provider = "OTLP_PROVIDER"
	EmptyProvider   Provider = "EMPTY_PROVIDER"
)

// TraceProvider owns the SDK tracer provider lifecycle.
type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

// Config selects the exporter and names the service in emitted traces.
type Config struct {
	Provider     Provider
	ServiceName  string
	OTLPEndpoint string
	// OTLPHeaders carries auth headers for managed collectors.
	OTLPHeaders map[string]string
	// UseHTTP selects http/protobuf over gRPC for the OTLP exporter.
	UseHTTP bool
}

// NewTraceProvider builds an SDK tracer provider from cfg and installs it
// globally. An unknown or empty provider installs a no-op.
func NewTraceProvider(log logger.LoggerInterface, cfg Config) TraceProvider {
	exp, name := buildExporter(log, cfg)
	if exp == nil {
		return emptyTraceProvider{}
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}

	rsrc, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("otel.provider", string(name)),
		))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(rsrc),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	return &traceProvider{tp}
}

func buildExporter(log logger.LoggerInterface, cfg Config) (sdktrace.SpanExporter, Provider) {
	ctx := context.Background()

	switch cfg.Provider {
	case ConsoleProvider:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			log.Error(ctx, "console exporter init failed", "error", err)
			return nil, EmptyProvider
		}
		return exp, ConsoleProvider

	case ZipkinProvider:
		exp, err := zipkin.New(cfg.OTLPEndpoint)
		if err != nil {
			log.Error(ctx, "zipkin exporter init failed", "error", err)
			return nil, EmptyProvider
		}
		return exp, ZipkinProvider

	case OTLPProvider:
		var exp sdktrace.SpanExporter
		var err error
		if cfg.UseHTTP {
			exp, err = otlptracehttp.New(ctx,
				otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint),
				otlptracehttp.WithHeaders(cfg.OTLPHeaders),
			)
		} else {
			exp, err = otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpointURL(cfg.OTLPEndpoint),
				otlptracegrpc.WithHeaders(cfg.OTLPHeaders),
			)
		}
		if err != nil {
			log.Error(ctx, "otlp exporter init failed", "error", err)
			return nil, EmptyProvider
		}
		return exp, OTLPProvider

	default:
		log.Warn(ctx, "trace provider not configured, tracing disabled")
		return nil, EmptyProvider
	}
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return o.tp.Shutdown(ctx)
}

type emptyTraceProvider struct{}

func (emptyTraceProvider) Stop() error { return nil }
