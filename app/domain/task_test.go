package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "empty", title: ""},
		{name: "short", title: "Buy milk"},
		{name: "exactly max", title: strings.Repeat("a", MaxTitleLength)},
		{name: "one over max", title: strings.Repeat("a", MaxTitleLength+1), wantErr: ErrTitleTooLong},
		{name: "multibyte at max", title: strings.Repeat("я", MaxTitleLength)},
		{name: "multibyte over max", title: strings.Repeat("я", MaxTitleLength+1), wantErr: ErrTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(1001, "Ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), u.ID)
	assert.Equal(t, "Ann", u.FullName)
}

func TestNewUserFallbackName(t *testing.T) {
	u, err := NewUser(42, "   ")
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, u.FullName)
}

func TestNewUserZeroID(t *testing.T) {
	_, err := NewUser(0, "Ann")
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestTaskStatus(t *testing.T) {
	task := Task{Title: "Buy milk"}
	assert.Equal(t, "❌", task.StatusEmoji())
	assert.Equal(t, "Not completed", task.StatusText())

	task.Completed = true
	assert.Equal(t, "✅", task.StatusEmoji())
	assert.Equal(t, "Completed", task.StatusText())
}
