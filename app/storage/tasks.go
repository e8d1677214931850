package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
)

// TaskPatch describes a partial task update. A nil field means "leave
// unchanged"; a non-nil field is written even when it equals the zero value,
// so an empty description or completed=false is an explicit update.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Tasks persists to-do items. Each operation is a single short statement; no
// transaction spans more than one call.
type Tasks struct {
	db *sqlx.DB
}

// NewTasks creates a task repository over the given connection pool.
func NewTasks(db *sqlx.DB) *Tasks {
	return &Tasks{db: db}
}

// Create inserts a new task for the user and returns it with the
// store-assigned id and creation timestamp filled in.
func (s *Tasks) Create(ctx context.Context, userID int64, title, description string) (domain.Task, error) {
	const query = `
		INSERT INTO tasks (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description, completed, created_at`
	var task domain.Task
	if err := s.db.GetContext(ctx, &task, query, userID, title, description); err != nil {
		return domain.Task{}, fmt.Errorf("create task for user %d: %w", userID, err)
	}
	return task, nil
}

// GetByID returns the task with the given id regardless of owner.
func (s *Tasks) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	const query = `
		SELECT id, user_id, title, description, completed, created_at
		FROM tasks WHERE id = $1`
	var task domain.Task
	err := s.db.GetContext(ctx, &task, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// ListByUser returns the user's tasks ordered by id, which matches creation
// order. Callback index tokens rely on this ordering being stable.
func (s *Tasks) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	const query = `
		SELECT id, user_id, title, description, completed, created_at
		FROM tasks WHERE user_id = $1 ORDER BY id`
	var tasks []domain.Task
	if err := s.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks for user %d: %w", userID, err)
	}
	return tasks, nil
}

// Update applies the patch to the task. An empty patch is a no-op.
func (s *Tasks) Update(ctx context.Context, id int64, patch TaskPatch) error {
	if patch.IsZero() {
		return nil
	}
	query, args := buildTaskUpdate(id, patch)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes the task by id.
func (s *Tasks) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Counts returns how many of the user's tasks are completed and the total.
func (s *Tasks) Counts(ctx context.Context, userID int64) (completed, total int, err error) {
	const query = `
		SELECT COUNT(*) FILTER (WHERE completed) AS completed, COUNT(*) AS total
		FROM tasks WHERE user_id = $1`
	row := struct {
		Completed int `db:"completed"`
		Total     int `db:"total"`
	}{}
	if err := s.db.GetContext(ctx, &row, query, userID); err != nil {
		return 0, 0, fmt.Errorf("count tasks for user %d: %w", userID, err)
	}
	return row.Completed, row.Total, nil
}

// Count returns the total number of tasks across all users.
func (s *Tasks) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// buildTaskUpdate assembles the UPDATE statement for a non-empty patch.
func buildTaskUpdate(id int64, patch TaskPatch) (string, []any) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Completed != nil {
		add("completed", *patch.Completed)
	}
	args = append(args, id)
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args))
	return query, args
}
