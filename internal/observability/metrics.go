package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// HTTP request metrics exposed on /metrics.
var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// InitMetrics installs the global OTel meter provider for the given exporter.
// With ExporterNone the global no-op provider is left in place.
func InitMetrics(ctx context.Context, exporter, serviceName string) (Shutdown, error) {
	var (
		metricExporter sdkmetric.Exporter
		err            error
	)

	switch exporter {
	case ExporterNone:
		return noopShutdown, nil
	case ExporterStdout:
		enc := json.NewEncoder(os.Stdout)
		metricExporter, err = stdoutmetric.New(
			stdoutmetric.WithEncoder(enc),
			stdoutmetric.WithoutTimestamps(),
		)
	case ExporterOTLP:
		metricExporter, err = otlpmetrichttp.New(ctx)
	default:
		return nil, errors.Wrapf(ErrUnknownExporter, "%q", exporter)
	}
	if err != nil {
		return nil, errors.Wrap(err, "creating metric exporter")
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter),
		),
	)

	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

func PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
