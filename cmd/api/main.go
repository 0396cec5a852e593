package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"calculator-service/internal/config"
	"calculator-service/internal/observability"
	"calculator-service/internal/server"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, cfgPath := config.MustLoad()

	// Logger
	err := observability.InitLogger(cfg.Env == config.EnvLocal, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing, metrics and OTLP logs
	shutdown, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		panic(err)
	}
	defer shutdownTelemetry(shutdown, cfg.HTTP.ShutdownTimeout)

	if cfgPath != "" {
		go watchConfig(ctx, cfgPath)
	}

	srv := server.New(cfg.HTTP, server.NewRouter())

	observability.Logger.Info("server starting",
		zap.String("addr", cfg.HTTP.Addr()),
		zap.String("state", string(srv.Lifecycle().State())),
		zap.String("exporter", cfg.Telemetry.Exporter),
	)

	if err := srv.Run(ctx); err != nil {
		observability.Logger.Error("server stopped", zap.Error(err))
		return err
	}

	observability.Logger.Info("server stopped")
	return nil
}

// watchConfig applies log level changes from the config file while running.
func watchConfig(ctx context.Context, path string) {
	err := config.Watch(ctx, path, observability.Logger, func(cfg *config.Config) {
		if err := observability.SetLevel(cfg.LogLevel); err != nil {
			observability.Logger.Warn("ignoring invalid log level",
				zap.String("log_level", cfg.LogLevel), zap.Error(err))
			return
		}
		observability.Logger.Info("log level updated", zap.String("log_level", cfg.LogLevel))
	})
	if err != nil {
		observability.Logger.Error("config watcher stopped", zap.Error(err))
	}
}
