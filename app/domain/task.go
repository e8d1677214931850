package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTitleLength caps task titles; longer input is re-prompted, not truncated.
const MaxTitleLength = 50

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
}

// ValidateTitle checks the title length limit. Length is counted in runes so
// non-ASCII titles are not penalized for their encoding.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// StatusEmoji returns the list marker for the task's completed flag.
func (t Task) StatusEmoji() string {
	if t.Completed {
		return "✅"
	}
	return "❌"
}

// StatusText returns the human readable status used on the details screen.
func (t Task) StatusText() string {
	if t.Completed {
		return "Completed"
	}
	return "Not completed"
}
