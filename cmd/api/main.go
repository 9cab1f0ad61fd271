package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	api "todoapp/internal/adapter/http"
	"todoapp/pkg/config"
	"todoapp/pkg/telemetry"
)

func main() {
	ctx := context.Background()
	cfg := config.FromEnv()

	logger, err := config.NewLogger("todoapp")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.Init(ctx, telemetry.TelemetryConfig{
		ServiceName:    "todoapp",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := api.StartServer(ctx, cfg, logger, metrics); err != nil {
			logger.Error("Server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-c
	logger.Info("Shutting down gracefully...")
}
