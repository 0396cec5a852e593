package observability

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Exporter names accepted by the Init* functions.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnknownExporter is returned for an exporter name other than none, stdout or otlp.
var ErrUnknownExporter = errors.New("unknown telemetry exporter")

// Shutdown flushes and stops a telemetry provider.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracing installs the global tracer provider for the given exporter.
// With ExporterNone the global no-op provider is left in place.
func InitTracing(ctx context.Context, exporter, serviceName string) (Shutdown, error) {
	var (
		spanExporter sdktrace.SpanExporter
		err          error
	)

	switch exporter {
	case ExporterNone:
		return noopShutdown, nil
	case ExporterStdout:
		spanExporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	case ExporterOTLP:
		spanExporter, err = otlptracehttp.New(ctx)
	default:
		return nil, errors.Wrapf(ErrUnknownExporter, "%q", exporter)
	}
	if err != nil {
		return nil, errors.Wrap(err, "creating trace exporter")
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return provider.Shutdown, nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating resource")
	}
	return res, nil
}
