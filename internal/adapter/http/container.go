package http

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todoapp/internal/adapter/http/handler"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
	"todoapp/pkg/telemetry"
)

// Container wires store -> service -> handler. The store client is
// constructed once at startup and passed in explicitly.
type Container struct {
	TodoStore   port.TodoStore
	TodoService port.TodoService
	TodoHandler *handler.TodoHandler
}

func NewContainer(store port.TodoStore, logger *otelzap.Logger, metrics *telemetry.AppMetrics) *Container {
	todoSvc := service.NewTodoService(store, zapOrNil(logger))
	todoHandler := handler.NewTodoHandler(todoSvc, logger, metrics)

	return &Container{
		TodoStore:   store,
		TodoService: todoSvc,
		TodoHandler: todoHandler,
	}
}

func zapOrNil(logger *otelzap.Logger) *zap.Logger {
	if logger == nil {
		return nil
	}

	return logger.Logger
}
