package client

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/request"
)

const todosCacheKey = "todos"

// ErrNotInList is returned when a mutation addresses a todo the current
// list does not contain.
var ErrNotInList = errors.New("todo not found in list")

// TodoList keeps an optimistic local projection of the server's todo
// list. Mutations are applied to the cached snapshot the instant the
// caller acts and rolled back if the request fails; either way the entry
// is marked stale once the request settles, so the next read fetches
// server truth. The cache holds no authority; it only makes rendering
// feel immediate.
type TodoList struct {
	api    *Client
	cache  *cache.Cache
	logger *zap.Logger

	mu    sync.Mutex
	stale bool
}

func NewTodoList(api *Client, logger *zap.Logger) *TodoList {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TodoList{
		api:    api,
		cache:  cache.New(cache.NoExpiration, 10*time.Minute),
		logger: logger,
	}
}

// Todos returns the cached list, fetching when the cache is cold or a
// settled mutation invalidated it. The result is ordered by creation
// time, oldest first.
func (l *TodoList) Todos(ctx context.Context) ([]domain.Todo, error) {
	l.mu.Lock()
	stale := l.stale
	l.mu.Unlock()

	if !stale {
		if todos, ok := l.Cached(); ok {
			return todos, nil
		}
	}

	return l.Refresh(ctx)
}

// Refresh fetches the list from the API, bypassing the cache.
func (l *TodoList) Refresh(ctx context.Context) ([]domain.Todo, error) {
	todos, err := l.api.ListTodos(ctx)

	if err != nil {
		return nil, err
	}

	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].Created < todos[j].Created
	})

	l.mu.Lock()
	l.setCached(todos)
	l.stale = false
	l.mu.Unlock()

	return todos, nil
}

// Cached exposes the current snapshot without network I/O, for renderers
// that want to draw while a mutation is in flight. A stale snapshot is
// still returned; staleness only forces the next Todos call to refetch.
func (l *TodoList) Cached() ([]domain.Todo, bool) {
	if v, ok := l.cache.Get(todosCacheKey); ok {
		return v.([]domain.Todo), true
	}

	return nil, false
}

// Add creates a todo. The unsaved entry is appended to the snapshot
// before the request resolves; a failure rolls the snapshot back.
func (l *TodoList) Add(ctx context.Context, title string) (domain.Todo, error) {
	l.mu.Lock()
	snapshot, hadSnapshot := l.Cached()
	pending := domain.Todo{Title: title, Completed: false}
	l.setCached(append(slices.Clone(snapshot), pending))
	l.mu.Unlock()

	created, err := l.api.CreateTodo(ctx, request.CreateTodoRequest{
		Title:     title,
		Completed: false,
	})

	l.settle(snapshot, hadSnapshot, err)

	if err != nil {
		l.logger.Warn("Create failed, cache rolled back", zap.Error(err), zap.String("title", title))
		return domain.Todo{}, err
	}

	return created, nil
}

// ToggleCompleted flips the completion flag of the addressed todo. The
// flip is visible in the snapshot before the request resolves; a failure
// restores the previous value.
func (l *TodoList) ToggleCompleted(ctx context.Context, id string) (domain.Todo, error) {
	todos, err := l.Todos(ctx)

	if err != nil {
		return domain.Todo{}, err
	}

	idx := slices.IndexFunc(todos, func(t domain.Todo) bool { return t.ID == id })

	if idx < 0 {
		return domain.Todo{}, ErrNotInList
	}

	toggled := todos[idx].Toggled()

	l.mu.Lock()
	snapshot, hadSnapshot := l.Cached()
	optimistic := slices.Clone(snapshot)

	if i := slices.IndexFunc(optimistic, func(t domain.Todo) bool { return t.ID == id }); i >= 0 {
		optimistic[i] = toggled
	}

	l.setCached(optimistic)
	l.mu.Unlock()

	updated, err := l.api.UpdateTodo(ctx, toggled)

	l.settle(snapshot, hadSnapshot, err)

	if err != nil {
		l.logger.Warn("Toggle failed, cache rolled back", zap.Error(err), zap.String("id", id))
		return domain.Todo{}, err
	}

	return updated, nil
}

// Remove deletes a todo. There is no optimistic removal; the list
// catches up via invalidation once the request settles.
func (l *TodoList) Remove(ctx context.Context, id string) error {
	err := l.api.DeleteTodo(ctx, id)

	l.mu.Lock()
	l.stale = true
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("Delete failed", zap.Error(err), zap.String("id", id))
		return err
	}

	return nil
}

// settle reconciles after a mutation: roll back to the pre-mutation
// snapshot on error, and mark the cache stale either way so the next
// read consults the server.
func (l *TodoList) settle(snapshot []domain.Todo, hadSnapshot bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		if hadSnapshot {
			l.setCached(snapshot)
		} else {
			l.cache.Delete(todosCacheKey)
		}
	}

	l.stale = true
}

// setCached must be called with mu held.
func (l *TodoList) setCached(todos []domain.Todo) {
	l.cache.Set(todosCacheKey, todos, cache.NoExpiration)
}
