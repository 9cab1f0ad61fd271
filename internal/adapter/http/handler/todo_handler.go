package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "todoapp/internal/adapter/http/helper"
	. "todoapp/internal/adapter/http/validation"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/request"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
	"todoapp/pkg/telemetry"
	. "todoapp/pkg/tracing"
)

// Messages surfaced on the wire.
const (
	msgIDMismatch  = "Two different TODO IDs given!"
	msgDeleteFail  = "Couldn't delete"
	msgInvalidBody = "Invalid request body"
)

type TodoHandler struct {
	svc     port.TodoService
	logger  *otelzap.Logger
	metrics *telemetry.AppMetrics
}

func NewTodoHandler(svc port.TodoService, logger *otelzap.Logger, metrics *telemetry.AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

// GetAllTodos handles GET /api/v1/todos.
func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetAllTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userID := c.GetString("x-user-id")

	todos, err := t.svc.List(ctx, userID)
	t.recordOperation("list", err)

	if err != nil {
		AddSpanError(span, err)
		t.logError(c, "Failed to list todos", err)
		SendError(c, http.StatusInternalServerError, "Error getting todos")
		return
	}

	SendSuccess(c, todos)
}

// CreateTodo handles POST /api/v1/todos. The server assigns id, owner
// and creation time; the stored record is echoed back.
func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.CreateTodo", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userID := c.GetString("x-user-id")

	var params request.CreateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendError(c, http.StatusBadRequest, FormatValidationMessage(err))
		return
	}

	todo, err := t.svc.Create(ctx, userID, domain.Todo{
		Title:     params.Title,
		Completed: params.Completed,
	})
	t.recordOperation("create", err)

	if err != nil {
		AddSpanError(span, err)
		t.logError(c, "Failed to create todo", err)
		SendError(c, http.StatusInternalServerError, "Error creating todo")
		return
	}

	SendSuccess(c, todo)
}

// UpdateTodo handles PUT /api/v1/todos/:todoId. The path id and the
// payload id must agree; the stored record is fully replaced.
func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.UpdateTodo", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userID := c.GetString("x-user-id")
	todoID := c.Param("todoId")

	var params request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendError(c, http.StatusBadRequest, FormatValidationMessage(err))
		return
	}

	todo, err := t.svc.Update(ctx, userID, todoID, domain.Todo{
		ID:        params.ID,
		UserID:    params.UserID,
		Title:     params.Title,
		Completed: params.Completed,
		Created:   params.Created,
	})
	t.recordOperation("update", err)

	if err != nil {
		if errors.Is(err, service.ErrIDMismatch) {
			SendError(c, http.StatusBadRequest, msgIDMismatch)
			return
		}

		AddSpanError(span, err)
		t.logError(c, "Failed to update todo", err)
		SendError(c, http.StatusInternalServerError, "Error updating todo")
		return
	}

	SendSuccess(c, todo)
}

// DeleteTodo handles DELETE /api/v1/todos/:todoId. Deleting an id that
// was never stored still succeeds; only a store failure is surfaced.
func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.DeleteTodo", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userID := c.GetString("x-user-id")
	todoID := c.Param("todoId")

	err := t.svc.Delete(ctx, userID, todoID)
	t.recordOperation("delete", err)

	if err != nil {
		AddSpanError(span, err)
		t.logError(c, "Failed to delete todo", err)
		SendError(c, http.StatusBadRequest, msgDeleteFail)
		return
	}

	SendSuccess(c, gin.H{})
}

func (t *TodoHandler) recordOperation(operation string, err error) {
	if t.metrics != nil {
		t.metrics.RecordTodoOperation(operation, err)
	}
}

func (t *TodoHandler) logError(c *gin.Context, msg string, err error) {
	if t.logger != nil {
		t.logger.Ctx(c.Request.Context()).Error(msg,
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}
}
