package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
)

func TestWelcomeScreen(t *testing.T) {
	s := welcomeScreen("Ann", "Smart To-Do List", "https://github.com/smartlegionlab/todo-app-tg-bot", 2, 5)

	assert.Contains(t, s.Text, "<b>Ann</b>")
	assert.Contains(t, s.Text, "<b>Smart To-Do List</b>")

	require.NotNil(t, s.Markup)
	require.Len(t, s.Markup.InlineKeyboard, 3)
	assert.Equal(t, "add_task", s.Markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "📝 My tasks [2/5]", s.Markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "show_tasks", s.Markup.InlineKeyboard[1][0].Data)
	assert.Equal(t, "https://github.com/smartlegionlab/todo-app-tg-bot", s.Markup.InlineKeyboard[2][0].URL)
}

func TestTaskListScreenEmpty(t *testing.T) {
	s := taskListScreen("Ann", nil)

	assert.Equal(t, msgNoTasks, s.Text)
	require.NotNil(t, s.Markup)
	require.Len(t, s.Markup.InlineKeyboard, 1)
	assert.Equal(t, "back_to_start", s.Markup.InlineKeyboard[0][0].Data)
}

func TestTaskListScreenRowsCarryPositionTokens(t *testing.T) {
	tasks := []domain.Task{
		{ID: 7, Title: "Buy milk", Completed: false},
		{ID: 9, Title: "Walk dog", Completed: true},
	}
	s := taskListScreen("Ann", tasks)

	require.NotNil(t, s.Markup)
	require.Len(t, s.Markup.InlineKeyboard, 3)
	assert.Equal(t, "❌ Buy milk", s.Markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "task_1", s.Markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "✅ Walk dog", s.Markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "task_2", s.Markup.InlineKeyboard[1][0].Data)
	assert.Equal(t, "back_to_start", s.Markup.InlineKeyboard[2][0].Data)
}

func TestTaskDetailsScreen(t *testing.T) {
	task := domain.Task{
		ID:          12,
		Title:       "Buy milk",
		Description: "2 liters, whole",
		CreatedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	s := taskDetailsScreen(task)

	assert.Contains(t, s.Text, "Buy milk")
	assert.Contains(t, s.Text, "2 liters, whole")
	assert.Contains(t, s.Text, "Status: Not completed")
	assert.Contains(t, s.Text, "2026-08-30")

	require.NotNil(t, s.Markup)
	require.Len(t, s.Markup.InlineKeyboard, 4)
	assert.Equal(t, "edit_task_12", s.Markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "✅ Mark as done", s.Markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "toggle_task_12", s.Markup.InlineKeyboard[1][0].Data)
	assert.Equal(t, "delete_task_12", s.Markup.InlineKeyboard[2][0].Data)
	assert.Equal(t, "show_tasks", s.Markup.InlineKeyboard[3][0].Data)
}

func TestTaskDetailsScreenCompletedToggleLabel(t *testing.T) {
	s := taskDetailsScreen(domain.Task{ID: 3, Title: "Done thing", Completed: true})
	assert.Contains(t, s.Text, "Status: Completed")
	assert.Equal(t, "❌ Mark as not completed", s.Markup.InlineKeyboard[1][0].Text)
}

func TestScreensEscapeUserHTML(t *testing.T) {
	s := welcomeScreen("<Ann & Bob>", "App", "https://example.com", 0, 0)
	assert.Contains(t, s.Text, "&lt;Ann &amp; Bob&gt;")

	d := taskDetailsScreen(domain.Task{ID: 1, Title: "a <b> & c"})
	assert.Contains(t, d.Text, "a &lt;b&gt; &amp; c")
	assert.NotContains(t, d.Text, "a <b> & c")
}
