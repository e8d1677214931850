// Package services translates intent-level bot calls into storage operations.
// Services are stateless; all conversation state lives in the FSM session
// manager, and all durable state lives in storage.
package services

import (
	"context"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
)

// UserStore is the persistence surface required by UserService.
type UserStore interface {
	Upsert(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// TaskStore is the persistence surface required by TaskService.
type TaskStore interface {
	Create(ctx context.Context, userID int64, title, description string) (domain.Task, error)
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Update(ctx context.Context, id int64, patch storage.TaskPatch) error
	Delete(ctx context.Context, id int64) error
	Counts(ctx context.Context, userID int64) (completed, total int, err error)
	Count(ctx context.Context) (int64, error)
}

// Services groups the application services behind one wiring point.
type Services struct {
	Users *UserService
	Tasks *TaskService
}

// New wires services over the given stores.
func New(users UserStore, tasks TaskStore) *Services {
	return &Services{
		Users: NewUserService(users),
		Tasks: NewTaskService(tasks),
	}
}
