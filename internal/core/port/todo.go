package port

import (
	"context"

	"todoapp/internal/core/domain"
)

// TodoStore is the boundary between the service and the underlying
// key-value table.
type TodoStore interface {
	// ListByUser returns every todo in the user's partition. An empty
	// partition yields an empty slice, not an error. Order is unspecified;
	// callers sort.
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)

	// Put is an unconditional upsert: creates if absent, fully replaces if
	// present. Last write wins.
	Put(ctx context.Context, todo domain.Todo) error

	// Delete removes the item; deleting a missing item succeeds as a no-op.
	Delete(ctx context.Context, userID, id string) error
}

type TodoService interface {
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Create(ctx context.Context, userID string, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, userID, todoID string, todo domain.Todo) (domain.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}
