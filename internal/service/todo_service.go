package service

import (
	"context"
	"database/sql"
	"errors"

	dom "todo-api/internal/domain"
	"todo-api/internal/repo"
)

var ErrNotFound = errors.New("todo not found")

type TodoService struct {
	repo repo.TodoRepo
}

func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

func (s *TodoService) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	return s.repo.Create(ctx, t)
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	return s.repo.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update merges the patch over the stored row field by field: a nil field
// keeps the current value. The merge base is fetched first, so an absent id
// reports ErrNotFound before any write happens.
func (s *TodoService) Update(ctx context.Context, id int64, title, description *string, completed *bool) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}

	patch := existing
	if title != nil {
		patch.Title = *title
	}
	if description != nil {
		patch.Description = *description
	}
	if completed != nil {
		patch.Completed = *completed
	}

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		// The row can disappear between the merge fetch and the write.
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
