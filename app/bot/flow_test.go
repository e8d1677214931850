package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/app/services"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/state"
)

type fakeUsers struct {
	users map[int64]domain.User
}

func (f *fakeUsers) Upsert(_ context.Context, user domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeTasks struct {
	tasks  map[int64]domain.Task
	order  []int64
	nextID int64

	// updateErr, when set, makes Update fail to simulate a store outage.
	updateErr error
}

func (f *fakeTasks) Create(_ context.Context, userID int64, title, description string) (domain.Task, error) {
	f.nextID++
	t := domain.Task{ID: f.nextID, UserID: userID, Title: title, Description: description}
	f.tasks[t.ID] = t
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeTasks) GetByID(_ context.Context, id int64) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, storage.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTasks) ListByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, id int64, patch storage.TaskPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return storage.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	f.tasks[id] = t
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) Counts(_ context.Context, userID int64) (completed, total int, err error) {
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return completed, total, nil
}

func (f *fakeTasks) Count(context.Context) (int64, error) {
	return int64(len(f.tasks)), nil
}

func newTestFlow() (*Flow, *fakeTasks, state.Manager) {
	users := &fakeUsers{users: make(map[int64]domain.User)}
	tasks := &fakeTasks{tasks: make(map[int64]domain.Task)}
	sessions := state.NewMemoryManager()
	flow := NewFlow("Smart To-Do List", "https://github.com/smartlegionlab/todo-app-tg-bot", services.New(users, tasks), sessions)
	return flow, tasks, sessions
}

func TestCreateWizardPersistsTaskAndReturnsToIdle(t *testing.T) {
	flow, tasks, sessions := newTestFlow()
	ctx := context.Background()

	_, err := flow.Start(ctx, 1001, "Ann")
	require.NoError(t, err)

	screens, err := flow.StartAdd(ctx, 1001, "Ann")
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Contains(t, screens[0].Text, "enter the name of your task")
	assert.Equal(t, StateAwaitingTaskTitle, sessions.GetState(1001))

	screens, err = flow.HandleText(ctx, 1001, "Ann", "Buy milk")
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Equal(t, msgAskDescription, screens[0].Text)
	assert.Equal(t, StateAwaitingTaskDescription, sessions.GetState(1001))

	screens, err = flow.HandleText(ctx, 1001, "Ann", "2 liters, whole")
	require.NoError(t, err)
	require.Len(t, screens, 2)
	assert.Equal(t, "Task 'Buy milk' added!", screens[0].Text)

	require.Len(t, tasks.tasks, 1)
	created := tasks.tasks[1]
	assert.Equal(t, int64(1001), created.UserID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2 liters, whole", created.Description)
	assert.False(t, created.Completed)

	assert.False(t, sessions.InProgress(1001))
}

func TestCreateWizardRepromptsOnLongTitle(t *testing.T) {
	flow, tasks, sessions := newTestFlow()
	ctx := context.Background()

	_, err := flow.StartAdd(ctx, 1001, "Ann")
	require.NoError(t, err)

	long := strings.Repeat("x", domain.MaxTitleLength+1)
	screens, err := flow.HandleText(ctx, 1001, "Ann", long)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Equal(t, msgTitleTooLong, screens[0].Text)

	// State unchanged, nothing persisted.
	assert.Equal(t, StateAwaitingTaskTitle, sessions.GetState(1001))
	assert.Empty(t, tasks.tasks)

	// A valid retry still goes through.
	_, err = flow.HandleText(ctx, 1001, "Ann", "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingTaskDescription, sessions.GetState(1001))
}

func TestEditWizardUpdatesOnlyTargetedFields(t *testing.T) {
	flow, tasks, sessions := newTestFlow()
	ctx := context.Background()

	seed, err := tasks.Create(ctx, 1001, "Old title", "old description")
	require.NoError(t, err)
	require.NoError(t, tasks.Update(ctx, seed.ID, storage.TaskPatch{Completed: boolPtr(true)}))

	screens, err := flow.StartEdit(ctx, 1001, "Ann", seed.ID)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Contains(t, screens[0].Text, "Old title")
	assert.Equal(t, StateAwaitingEditTitle, sessions.GetState(1001))

	// The edit wizard has its own too-long re-prompt.
	long := strings.Repeat("x", domain.MaxTitleLength+1)
	screens, err = flow.HandleText(ctx, 1001, "Ann", long)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Equal(t, msgEditTitleTooLong, screens[0].Text)
	assert.Equal(t, StateAwaitingEditTitle, sessions.GetState(1001))

	_, err = flow.HandleText(ctx, 1001, "Ann", "New title")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingEditDescription, sessions.GetState(1001))

	screens, err = flow.HandleText(ctx, 1001, "Ann", "new description")
	require.NoError(t, err)
	require.NotEmpty(t, screens)
	assert.Equal(t, "Task updated: 'New title'!", screens[0].Text)

	updated := tasks.tasks[seed.ID]
	assert.Equal(t, seed.ID, updated.ID)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "new description", updated.Description)
	assert.True(t, updated.Completed, "completed flag must survive an edit")
	assert.False(t, sessions.InProgress(1001))
}

func TestEditWizardKeepsSessionOnStoreFailure(t *testing.T) {
	flow, tasks, sessions := newTestFlow()
	ctx := context.Background()

	seed, err := tasks.Create(ctx, 1001, "Old title", "old description")
	require.NoError(t, err)

	_, err = flow.StartEdit(ctx, 1001, "Ann", seed.ID)
	require.NoError(t, err)
	_, err = flow.HandleText(ctx, 1001, "Ann", "New title")
	require.NoError(t, err)

	tasks.updateErr = errors.New("connection refused")
	screens, err := flow.HandleText(ctx, 1001, "Ann", "new description")
	require.Error(t, err)
	assert.Empty(t, screens)

	// The session survives the outage: the next message is still wizard input.
	assert.Equal(t, StateAwaitingEditDescription, sessions.GetState(1001))
	title, ok := sessions.GetTempString(1001, scratchPendingTitle)
	require.True(t, ok)
	assert.Equal(t, "New title", title)
	assert.Equal(t, "Old title", tasks.tasks[seed.ID].Title)

	tasks.updateErr = nil
	screens, err = flow.HandleText(ctx, 1001, "Ann", "new description")
	require.NoError(t, err)
	require.NotEmpty(t, screens)
	assert.Equal(t, "Task updated: 'New title'!", screens[0].Text)
	assert.Equal(t, "New title", tasks.tasks[seed.ID].Title)
	assert.False(t, sessions.InProgress(1001))
}

func TestToggleTaskFlipsFlagAndAnnounces(t *testing.T) {
	flow, tasks, _ := newTestFlow()
	ctx := context.Background()

	seed, err := tasks.Create(ctx, 1001, "Buy milk", "")
	require.NoError(t, err)

	screens, err := flow.ToggleTask(ctx, 1001, "Ann", seed.ID)
	require.NoError(t, err)
	require.NotEmpty(t, screens)
	assert.Equal(t, msgCompleted, screens[0].Text)
	assert.True(t, tasks.tasks[seed.ID].Completed)

	screens, err = flow.ToggleTask(ctx, 1001, "Ann", seed.ID)
	require.NoError(t, err)
	require.NotEmpty(t, screens)
	assert.Equal(t, msgNotCompleted, screens[0].Text)
	assert.False(t, tasks.tasks[seed.ID].Completed)
}

func TestShowTaskAtIgnoresOutOfRangeIndex(t *testing.T) {
	flow, tasks, _ := newTestFlow()
	ctx := context.Background()

	_, err := tasks.Create(ctx, 1001, "Buy milk", "")
	require.NoError(t, err)

	for _, n := range []int{0, -1, 2, 99} {
		screens, err := flow.ShowTaskAt(ctx, 1001, n)
		require.NoError(t, err)
		assert.Empty(t, screens)
	}

	screens, err := flow.ShowTaskAt(ctx, 1001, 1)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Contains(t, screens[0].Text, "Buy milk")
}

func TestTaskActionsOnMissingTaskDegradeGracefully(t *testing.T) {
	flow, _, sessions := newTestFlow()
	ctx := context.Background()

	for name, action := range map[string]func() ([]Screen, error){
		"edit":     func() ([]Screen, error) { return flow.StartEdit(ctx, 1001, "Ann", 404) },
		"complete": func() ([]Screen, error) { return flow.CompleteTask(ctx, 1001, "Ann", 404) },
		"toggle":   func() ([]Screen, error) { return flow.ToggleTask(ctx, 1001, "Ann", 404) },
		"delete":   func() ([]Screen, error) { return flow.DeleteTask(ctx, 1001, "Ann", 404) },
	} {
		screens, err := action()
		require.NoError(t, err, name)
		require.NotEmpty(t, screens, name)
		assert.Equal(t, msgTaskGone, screens[0].Text, name)
	}
	assert.False(t, sessions.InProgress(1001))
}

func TestDeleteTaskRemovesAndRerendersList(t *testing.T) {
	flow, tasks, _ := newTestFlow()
	ctx := context.Background()

	seed, err := tasks.Create(ctx, 1001, "Buy milk", "")
	require.NoError(t, err)

	screens, err := flow.DeleteTask(ctx, 1001, "Ann", seed.ID)
	require.NoError(t, err)
	require.Len(t, screens, 2)
	assert.Equal(t, msgDeleted, screens[0].Text)
	assert.Equal(t, msgNoTasks, screens[1].Text)
	assert.Empty(t, tasks.tasks)
}

func TestStartAddOverwritesInFlightWizard(t *testing.T) {
	flow, _, sessions := newTestFlow()
	ctx := context.Background()

	_, err := flow.StartAdd(ctx, 1001, "Ann")
	require.NoError(t, err)
	_, err = flow.HandleText(ctx, 1001, "Ann", "Buy milk")
	require.NoError(t, err)

	// Pressing "Add task" again drops the half-finished session.
	_, err = flow.StartAdd(ctx, 1001, "Ann")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingTaskTitle, sessions.GetState(1001))
	_, ok := sessions.GetTempString(1001, scratchPendingTitle)
	assert.False(t, ok)
}

func boolPtr(b bool) *bool { return &b }
