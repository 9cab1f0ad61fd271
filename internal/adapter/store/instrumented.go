package store

import (
	"context"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/port"
	"todoapp/pkg/telemetry"
)

// WithMetrics decorates a store so every table operation is counted.
func WithMetrics(next port.TodoStore, metrics *telemetry.AppMetrics) port.TodoStore {
	if metrics == nil {
		return next
	}

	return &instrumentedStore{next: next, metrics: metrics}
}

type instrumentedStore struct {
	next    port.TodoStore
	metrics *telemetry.AppMetrics
}

func (s *instrumentedStore) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	todos, err := s.next.ListByUser(ctx, userID)
	s.metrics.RecordStoreOperation("query", err)

	return todos, err
}

func (s *instrumentedStore) Put(ctx context.Context, todo domain.Todo) error {
	err := s.next.Put(ctx, todo)
	s.metrics.RecordStoreOperation("put", err)

	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, userID, id string) error {
	err := s.next.Delete(ctx, userID, id)
	s.metrics.RecordStoreOperation("delete", err)

	return err
}
