package observability

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging tees Logger into an OTLP log exporter. Only the OTLP exporter
// ships logs; for the others stdout already carries them and Logger is left as is.
func InitLogging(ctx context.Context, exporter, serviceName string) (Shutdown, error) {
	if exporter != ExporterOTLP {
		return noopShutdown, nil
	}

	logExporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "creating log exporter")
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(logExporter),
		),
	)

	otelCore := otelzap.NewCore(serviceName, otelzap.WithLoggerProvider(provider))

	// stdout and OTLP both receive every entry.
	Logger = zap.New(zapcore.NewTee(Logger.Core(), otelCore))

	return provider.Shutdown, nil
}
