package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "todo-api/internal/domain"
	"todo-api/internal/dto"
)

func TestTodoRepresentationRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	original := dom.Todo{
		ID:          7,
		Title:       "Test",
		Description: "Test description",
		Completed:   true,
		CreatedAt:   created,
		UpdatedAt:   created.Add(2 * time.Hour),
	}

	got := dto.FromTodo(original).ToTodo()
	assert.Equal(t, original, got)
}

func TestFromTodoUnsetTimestampsAreNull(t *testing.T) {
	resp := dto.FromTodo(dom.Todo{Title: "x"})
	require.Nil(t, resp.CreatedAt)
	require.Nil(t, resp.UpdatedAt)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":0,"title":"x","description":"","completed":false,"created_at":null,"updated_at":null}`,
		string(raw))
}

func TestCreateRequestDefaults(t *testing.T) {
	var req dto.CreateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"only title"}`), &req))

	todo := req.ToTodo()
	assert.Equal(t, "only title", todo.Title)
	assert.Equal(t, "", todo.Description)
	assert.False(t, todo.Completed)
}

func TestCreateRequestMissingTitleKey(t *testing.T) {
	var req dto.CreateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":"x"}`), &req))
	assert.Nil(t, req.Title)
}

func TestCreateRequestEmptyTitleIsPresent(t *testing.T) {
	var req dto.CreateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":""}`), &req))
	require.NotNil(t, req.Title)
	assert.Equal(t, "", *req.Title)
}

func TestFromTodosEmptySerializesAsArray(t *testing.T) {
	out := dto.FromTodos(nil)
	require.NotNil(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
