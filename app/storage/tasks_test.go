package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildTaskUpdateAllFields(t *testing.T) {
	query, args := buildTaskUpdate(7, TaskPatch{
		Title:       strPtr("Buy milk"),
		Description: strPtr("2 liters, whole"),
		Completed:   boolPtr(true),
	})
	assert.Equal(t, "UPDATE tasks SET title = $1, description = $2, completed = $3 WHERE id = $4", query)
	assert.Equal(t, []any{"Buy milk", "2 liters, whole", true, int64(7)}, args)
}

func TestBuildTaskUpdateSingleField(t *testing.T) {
	query, args := buildTaskUpdate(3, TaskPatch{Completed: boolPtr(false)})
	assert.Equal(t, "UPDATE tasks SET completed = $1 WHERE id = $2", query)
	assert.Equal(t, []any{false, int64(3)}, args)
}

func TestBuildTaskUpdateZeroValuesAreExplicit(t *testing.T) {
	// A non-nil empty string must still produce a SET clause.
	query, args := buildTaskUpdate(5, TaskPatch{Description: strPtr("")})
	assert.Equal(t, "UPDATE tasks SET description = $1 WHERE id = $2", query)
	assert.Equal(t, []any{"", int64(5)}, args)
}

func TestTaskPatchIsZero(t *testing.T) {
	assert.True(t, TaskPatch{}.IsZero())
	assert.False(t, TaskPatch{Title: strPtr("x")}.IsZero())
	assert.False(t, TaskPatch{Completed: boolPtr(false)}.IsZero())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrTaskNotFound))
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(assert.AnError))
}
