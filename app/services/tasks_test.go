package services

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
)

type fakeTaskStore struct {
	nextID int64
	tasks  map[int64]domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]domain.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, userID int64, title, description string) (domain.Task, error) {
	f.nextID++
	task := domain.Task{
		ID:          f.nextID,
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id int64) (domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, storage.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) ListByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id int64, patch storage.TaskPatch) error {
	task, ok := f.tasks[id]
	if !ok {
		return storage.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	f.tasks[id] = task
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) Counts(_ context.Context, userID int64) (int, int, error) {
	completed, total := 0, 0
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}
	return completed, total, nil
}

func (f *fakeTaskStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.tasks)), nil
}

func TestTaskServiceCreateStoresTitleExactly(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())

	task, err := svc.Create(context.Background(), 1001, "Buy milk", "2 liters, whole")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 liters, whole", task.Description)
	assert.False(t, task.Completed)

	stored, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)
}

func TestTaskServiceCreateRejectsLongTitle(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	_, err := svc.Create(context.Background(), 1001, strings.Repeat("x", domain.MaxTitleLength+1), "")
	assert.ErrorIs(t, err, domain.ErrTitleTooLong)
	assert.Empty(t, store.tasks, "no task must be persisted on validation failure")
}

func TestTaskServiceTogglePairIsIdempotent(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	task, err := svc.Create(context.Background(), 1, "t", "")
	require.NoError(t, err)

	first, err := svc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := svc.Toggle(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, second)

	stored, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Completed, stored.Completed)
}

func TestTaskServiceUpdateContentLeavesFlagAndID(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	task, err := svc.Create(context.Background(), 1, "old", "old desc")
	require.NoError(t, err)
	require.NoError(t, svc.SetCompleted(context.Background(), task.ID, true))

	require.NoError(t, svc.UpdateContent(context.Background(), task.ID, "new title", "new desc"))

	stored, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, stored.ID)
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, "new desc", stored.Description)
	assert.True(t, stored.Completed, "completed flag must survive a content edit")
}

func TestTaskServiceUpdateContentRejectsLongTitle(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	task, err := svc.Create(context.Background(), 1, "old", "old desc")
	require.NoError(t, err)

	err = svc.UpdateContent(context.Background(), task.ID, strings.Repeat("x", 51), "new desc")
	assert.ErrorIs(t, err, domain.ErrTitleTooLong)

	stored, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "old", stored.Title, "failed validation must not mutate the task")
	assert.Equal(t, "old desc", stored.Description)
}

func TestTaskServiceDeleteThenLookupNotFound(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	task, err := svc.Create(context.Background(), 1, "t", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), task.ID))

	_, err = svc.Get(context.Background(), task.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	tasks, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskServiceCounts(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	a, err := svc.Create(context.Background(), 1, "a", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, "b", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, "other user", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetCompleted(context.Background(), a.ID, true))

	completed, total, err := svc.Counts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, total)
}
