package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
)

// Users persists bot users keyed by their Telegram id.
type Users struct {
	db *sqlx.DB
}

// NewUsers creates a user repository over the given connection pool.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Upsert inserts the user or refreshes the stored display name when the user
// already exists. Telegram ids are external, so conflicts are routine.
func (s *Users) Upsert(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name`
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.FullName); err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ID, err)
	}
	return nil
}

// GetByID returns the user with the given Telegram id.
func (s *Users) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT id, full_name FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// Count returns the total number of registered users.
func (s *Users) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
