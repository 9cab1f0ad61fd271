package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/core/domain"
	"todoapp/pkg/client"
)

// primedModel builds a model whose TodoList cache already holds todos,
// as it would after the initial fetch.
func primedModel(t *testing.T, todos []domain.Todo) Model {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(todos)
	}))
	t.Cleanup(server.Close)

	list := client.NewTodoList(client.New(server.URL), nil)

	_, err := list.Todos(context.Background())
	require.NoError(t, err)

	m := NewModel(list)
	m.todos = todos
	m.loading = false

	return m
}

func TestRequestErrorDoesNotScheduleRetry(t *testing.T) {
	m := primedModel(t, []domain.Todo{{ID: "a", Title: "keep", Created: 100}})

	next, cmd := m.Update(requestErrMsg{errors.New("connection refused")})

	model := next.(Model)

	assert.Nil(t, cmd, "a failed request must not trigger another fetch")
	assert.Equal(t, "connection refused", model.errText)
	assert.False(t, model.loading)

	// The rolled-back snapshot is what gets rendered.
	require.Len(t, model.todos, 1)
	assert.Equal(t, "keep", model.todos[0].Title)
}

func TestLoadedTodosPreserveErrorText(t *testing.T) {
	m := primedModel(t, nil)
	m.errText = "Error creating todo"

	next, _ := m.Update(todosLoadedMsg([]domain.Todo{{ID: "a", Title: "t"}}))

	model := next.(Model)

	assert.Equal(t, "Error creating todo", model.errText)
	assert.Len(t, model.todos, 1)
}

func TestManualRefreshClearsError(t *testing.T) {
	m := primedModel(t, nil)
	m.errText = "stale error"
	m.focusList = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	model := next.(Model)

	assert.Empty(t, model.errText)
	assert.True(t, model.loading)
	assert.NotNil(t, cmd)
}

func TestSubmittingNewTodoClearsError(t *testing.T) {
	m := primedModel(t, nil)
	m.errText = "stale error"
	m.input.SetValue("buy milk")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model := next.(Model)

	assert.Empty(t, model.errText)
	assert.NotNil(t, cmd)
	require.Len(t, model.todos, 1)
	assert.Equal(t, "buy milk", model.todos[0].Title)
}
