package domain

import "strings"

// AnonymousName is used when Telegram does not expose a display name.
const AnonymousName = "Anonim"

// User is a bot user. The id is the Telegram user id, so it is stable across
// sessions and never generated locally.
type User struct {
	ID       int64  `db:"id"`
	FullName string `db:"full_name"`
}

// NewUser builds a User from Telegram identity data, substituting a
// placeholder for an empty display name.
func NewUser(id int64, fullName string) (User, error) {
	if id == 0 {
		return User{}, ErrEmptyUserID
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = AnonymousName
	}
	return User{ID: id, FullName: name}, nil
}
