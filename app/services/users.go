package services

import (
	"context"
	"log/slog"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/core/logger"
)

// UserService maintains the user registry.
type UserService struct {
	store UserStore
}

// NewUserService creates the user service.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// RegisterVisit records that the user contacted the bot: the row is created on
// first contact and the display name refreshed afterwards. A storage failure
// is logged and swallowed so the welcome screen still renders; the next /start
// retries naturally.
func (s *UserService) RegisterVisit(ctx context.Context, id int64, fullName string) (domain.User, error) {
	user, err := domain.NewUser(id, fullName)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.store.Upsert(ctx, user); err != nil {
		logger.Warn(ctx, "service.users", "user.register.fail",
			slog.String("status", "fail"),
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return user, nil
	}
	logger.Debug(ctx, "service.users", "user.register",
		slog.String("status", "ok"),
		slog.Int64("user_id", id),
	)
	return user, nil
}

// Get returns the stored user by Telegram id.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.store.GetByID(ctx, id)
}

// Count returns the number of registered users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
