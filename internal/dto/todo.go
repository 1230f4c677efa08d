package dto

import (
	"time"

	dom "todo-api/internal/domain"
)

// CreateTodoRequest mirrors the POST /todos body. Title is a pointer so a
// missing key can be told apart from an empty string: only key presence is
// validated, an empty title passes through.
type CreateTodoRequest struct {
	Title       *string `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
}

// ToTodo builds the entity with the defaulting rules of the representation:
// missing description/completed become ""/false.
func (r CreateTodoRequest) ToTodo() dom.Todo {
	t := dom.Todo{
		Description: r.Description,
		Completed:   r.Completed,
	}
	if r.Title != nil {
		t.Title = *r.Title
	}
	return t
}

// UpdateTodoRequest carries a partial update; nil = keep the stored value.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoResponse is the wire representation. Timestamps render as RFC 3339
// strings, or null when the entity has not been persisted yet.
type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ToTodo converts a representation back into the entity; null timestamps
// map to the zero value.
func (r TodoResponse) ToTodo() dom.Todo {
	t := dom.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
	if r.CreatedAt != nil {
		t.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		t.UpdatedAt = *r.UpdatedAt
	}
	return t
}

func FromTodo(t dom.Todo) TodoResponse {
	resp := TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		resp.CreatedAt = &created
	}
	if !t.UpdatedAt.IsZero() {
		updated := t.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// FromTodos always returns a non-nil slice so an empty table serializes as [].
func FromTodos(list []dom.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTodo(t))
	}
	return out
}
