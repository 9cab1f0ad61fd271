package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"todoapp/internal/core/domain"
)

func TestToggledFlipsOnlyCompleted(t *testing.T) {
	todo := domain.Todo{ID: "a", UserID: "u", Title: "t", Completed: false, Created: 100}

	toggled := todo.Toggled()

	assert.True(t, toggled.Completed)
	assert.False(t, toggled.Toggled().Completed)

	toggled.Completed = todo.Completed
	assert.Equal(t, todo, toggled)
}

func TestBelongsToUser(t *testing.T) {
	todo := domain.Todo{UserID: "alice"}

	assert.True(t, todo.BelongsToUser("alice"))
	assert.False(t, todo.BelongsToUser("bob"))
}

func TestCanonicalJSONKeys(t *testing.T) {
	data, err := json.Marshal(domain.Todo{
		ID:      "a",
		UserID:  "no-one",
		Title:   "buy milk",
		Created: 100,
	})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","user_id":"no-one","title":"buy milk","completed":false,"created":100}`, string(data))
}
