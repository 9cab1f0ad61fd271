package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todoapp/internal/adapter/http/routes"
	"todoapp/internal/adapter/store"
	"todoapp/internal/adapter/store/dynamo"
	"todoapp/internal/adapter/store/memory"
	"todoapp/internal/core/port"
	"todoapp/pkg/config"
	"todoapp/pkg/telemetry"
)

// StartServer builds the store for the configured driver, wires the
// container and serves the API. Blocks until the listener fails.
func StartServer(ctx context.Context, cfg *config.AppConfig, logger *otelzap.Logger, metrics *telemetry.AppMetrics) error {
	todoStore, err := newStore(ctx, cfg)

	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	container := NewContainer(store.WithMetrics(todoStore, metrics), logger, metrics)

	router := routes.SetupRouter(routes.HandlersConfig{
		TodoHandler: container.TodoHandler,
	}, metrics, logger)

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("table", cfg.TableName),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newStore(ctx context.Context, cfg *config.AppConfig) (port.TodoStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		return memory.NewStore(), nil
	case "dynamo":
		return dynamo.NewFromEnv(ctx, cfg.TableName, cfg.DynamoEndpoint)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
