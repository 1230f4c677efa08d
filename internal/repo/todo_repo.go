package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	dom "todo-api/internal/domain"
)

// TodoRepo translates CRUD intents into statements against the todos table.
// Zero-row outcomes surface as sql.ErrNoRows so callers can tell absence
// apart from a datastore failure.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type MySQLTodoRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewMySQLTodoRepo(db *sql.DB, log *zap.Logger) *MySQLTodoRepo {
	return &MySQLTodoRepo{db: db, log: log}
}

const todoColumns = `id, title, description, completed, created_at, updated_at`

// Create inserts the row and re-reads it so the caller observes the
// server-assigned id and timestamps, at the cost of one extra round trip.
func (r *MySQLTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (title, description, completed) VALUES (?, ?, ?)`,
		t.Title, t.Description, t.Completed)
	if err != nil {
		r.log.Error("create todo", zap.Error(err))
		return dom.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		r.log.Error("create todo: last insert id", zap.Error(err))
		return dom.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *MySQLTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error("list todos", zap.Error(err))
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	list := make([]dom.Todo, 0)
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			r.log.Error("scan todo", zap.Error(err))
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("list todos", zap.Error(err))
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return list, nil
}

func (r *MySQLTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	var t dom.Todo
	err := r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Todo{}, err
		}
		r.log.Error("get todo", zap.Int64("id", id), zap.Error(err))
		return dom.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// Update writes the full patch by id and re-fetches the stored row so the
// refreshed updated_at comes back from the server. Zero matched rows means
// the id is absent.
func (r *MySQLTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, completed = ? WHERE id = ?`,
		patch.Title, patch.Description, patch.Completed, id)
	if err != nil {
		r.log.Error("update todo", zap.Int64("id", id), zap.Error(err))
		return dom.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.log.Error("update todo: rows affected", zap.Int64("id", id), zap.Error(err))
		return dom.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if affected == 0 {
		return dom.Todo{}, sql.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row by id; hard delete, no tombstone.
func (r *MySQLTodoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		r.log.Error("delete todo", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.log.Error("delete todo: rows affected", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete todo: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
