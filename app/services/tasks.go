package services

import (
	"context"
	"log/slog"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
	"github.com/smartlegionlab/todo-app-tg-bot/core/logger"
)

// TaskService exposes intent-level task operations to the bot handlers.
type TaskService struct {
	store TaskStore
}

// NewTaskService creates the task service.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create validates the title and persists a new incomplete task.
func (s *TaskService) Create(ctx context.Context, userID int64, title, description string) (domain.Task, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return domain.Task{}, err
	}
	task, err := s.store.Create(ctx, userID, title, description)
	if err != nil {
		return domain.Task{}, err
	}
	logger.Info(ctx, "service.tasks", "task.create",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("task_id", task.ID),
	)
	return task, nil
}

// Get returns a task by id.
func (s *TaskService) Get(ctx context.Context, id int64) (domain.Task, error) {
	return s.store.GetByID(ctx, id)
}

// List returns the user's tasks in creation order.
func (s *TaskService) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.store.ListByUser(ctx, userID)
}

// UpdateContent replaces the title and description of the task, leaving the
// completed flag and ownership untouched.
func (s *TaskService) UpdateContent(ctx context.Context, id int64, title, description string) error {
	if err := domain.ValidateTitle(title); err != nil {
		return err
	}
	err := s.store.Update(ctx, id, storage.TaskPatch{
		Title:       &title,
		Description: &description,
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "service.tasks", "task.update",
		slog.String("status", "ok"),
		slog.Int64("task_id", id),
	)
	return nil
}

// SetCompleted writes the completed flag explicitly.
func (s *TaskService) SetCompleted(ctx context.Context, id int64, completed bool) error {
	err := s.store.Update(ctx, id, storage.TaskPatch{Completed: &completed})
	if err != nil {
		return err
	}
	logger.Info(ctx, "service.tasks", "task.set_completed",
		slog.String("status", "ok"),
		slog.Int64("task_id", id),
		slog.Bool("completed", completed),
	)
	return nil
}

// Toggle flips the completed flag and reports the new value.
func (s *TaskService) Toggle(ctx context.Context, id int64) (bool, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !task.Completed
	if err := s.SetCompleted(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "service.tasks", "task.delete",
		slog.String("status", "ok"),
		slog.Int64("task_id", id),
	)
	return nil
}

// Counts returns the user's completed/total task counters for the menu button.
func (s *TaskService) Counts(ctx context.Context, userID int64) (completed, total int, err error) {
	return s.store.Counts(ctx, userID)
}

// Count returns the global task count for admin statistics.
func (s *TaskService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
