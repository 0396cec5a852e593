package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"calculator-service/internal/calculator"
	"calculator-service/internal/config"
	"calculator-service/internal/observability"
)

// initTelemetry initialises tracing, metric and log providers plus the
// calculator's metric instruments. The returned shutdowns run in reverse order.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) ([]observability.Shutdown, error) {
	var shutdowns []observability.Shutdown

	traceShutdown, err := observability.InitTracing(ctx, cfg.Exporter, cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := observability.InitMetrics(ctx, cfg.Exporter, cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	logShutdown, err := observability.InitLogging(ctx, cfg.Exporter, cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, logShutdown)

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdowns, nil
}

func shutdownTelemetry(shutdowns []observability.Shutdown, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for i := len(shutdowns) - 1; i >= 0; i-- {
		if err := shutdowns[i](ctx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
}
