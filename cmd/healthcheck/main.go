// Command healthcheck waits for the calculator service to report ready.
// It exits 0 once GET /health answers 200 {"status":"ok"} and 1 otherwise.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"calculator-service/internal/probe"
)

func main() {
	url := flag.String("url", "http://127.0.0.1:5000/health", "health endpoint to probe")
	attempts := flag.Uint("attempts", probe.DefaultAttempts, "maximum number of probes")
	interval := flag.Duration("interval", probe.DefaultInterval, "delay between probes")
	timeout := flag.Duration("timeout", probe.DefaultTimeout, "timeout of a single probe")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := probe.New(*url,
		probe.WithAttempts(*attempts),
		probe.WithInterval(*interval),
		probe.WithTimeout(*timeout),
		probe.WithLogger(logger),
	)

	if _, err := p.WaitReady(ctx); err != nil {
		logger.Error("health check failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
