package memory

import (
	"context"
	"sync"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
)

// Store is a mutex-guarded in-memory table keyed (user_id, id). It backs
// tests and local development; semantics mirror the dynamo adapter:
// unconditional upsert, no-op delete on missing items.
type Store struct {
	mu         sync.RWMutex
	partitions map[string]map[string]domain.Todo
}

func NewStore() *Store {
	return &Store{
		partitions: make(map[string]map[string]domain.Todo),
	}
}

var _ port.TodoStore = &Store{}

func (s *Store) ListByUser(_ context.Context, userID string) ([]domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.partitions[userID]))

	for _, todo := range s.partitions[userID] {
		todos = append(todos, todo)
	}

	return todos, nil
}

func (s *Store) Put(_ context.Context, todo domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	partition, ok := s.partitions[todo.UserID]

	if !ok {
		partition = make(map[string]domain.Todo)
		s.partitions[todo.UserID] = partition
	}

	partition[todo.ID] = todo

	return nil
}

func (s *Store) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.partitions[userID], id)

	return nil
}

// Len reports the number of items in a user's partition.
func (s *Store) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.partitions[userID])
}
