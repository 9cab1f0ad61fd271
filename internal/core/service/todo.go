package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
)

// ErrIDMismatch is returned when the todo id addressed by the request
// disagrees with the id inside the payload.
var ErrIDMismatch = errors.New("two different todo ids given")

type TodoService struct {
	store  port.TodoStore
	logger *zap.Logger
}

func NewTodoService(store port.TodoStore, logger *zap.Logger) *TodoService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TodoService{
		store:  store,
		logger: logger,
	}
}

// List returns the user's todos ordered by creation time, oldest first.
func (ts *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	todos, err := ts.store.ListByUser(ctx, userID)

	if err != nil {
		ts.logger.Error("Failed to list todos", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].Created < todos[j].Created
	})

	return todos, nil
}

// Create stores a new todo. The id, owner and creation time are assigned
// here; any client-supplied values for them are overwritten.
func (ts *TodoService) Create(ctx context.Context, userID string, todo domain.Todo) (domain.Todo, error) {
	newTodo := domain.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     todo.Title,
		Completed: todo.Completed,
		Created:   time.Now().UnixMilli(),
	}

	if err := ts.store.Put(ctx, newTodo); err != nil {
		ts.logger.Error("Failed to create todo", zap.Error(err), zap.String("title", newTodo.Title))
		return domain.Todo{}, err
	}

	return newTodo, nil
}

// Update fully replaces the stored record. The addressed id and the
// payload id must agree, and the owner is always forced to userID.
func (ts *TodoService) Update(ctx context.Context, userID, todoID string, todo domain.Todo) (domain.Todo, error) {
	if todoID != todo.ID {
		return domain.Todo{}, ErrIDMismatch
	}

	todo.UserID = userID

	if err := ts.store.Put(ctx, todo); err != nil {
		ts.logger.Error("Failed to update todo", zap.Error(err), zap.String("todo_id", todoID))
		return domain.Todo{}, err
	}

	return todo, nil
}

// Delete is unconditional; deleting an id that was never stored succeeds.
func (ts *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if err := ts.store.Delete(ctx, userID, todoID); err != nil {
		ts.logger.Error("Failed to delete todo", zap.Error(err), zap.String("todo_id", todoID))
		return err
	}

	return nil
}
