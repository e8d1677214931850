package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		data string
		want Token
		ok   bool
	}{
		{data: "task_1", want: Token{Kind: KindShowTask, Arg: 1}, ok: true},
		{data: "task_42", want: Token{Kind: KindShowTask, Arg: 42}, ok: true},
		{data: "edit_task_7", want: Token{Kind: KindEditTask, Arg: 7}, ok: true},
		{data: "complete_task_7", want: Token{Kind: KindCompleteTask, Arg: 7}, ok: true},
		{data: "delete_task_7", want: Token{Kind: KindDeleteTask, Arg: 7}, ok: true},
		{data: "toggle_task_7", want: Token{Kind: KindToggleTask, Arg: 7}, ok: true},
		{data: "show_tasks", want: Token{Kind: KindShowTasks}, ok: true},
		{data: "back_to_start", want: Token{Kind: KindBackToStart}, ok: true},
		{data: "add_task", want: Token{Kind: KindAddTask}, ok: true},
		// Telebot-produced data carries a leading marker.
		{data: "\fadd_task", want: Token{Kind: KindAddTask}, ok: true},
		// Malformed or unknown data must not decode.
		{data: ""},
		{data: "task_"},
		{data: "task_x"},
		{data: "task"},
		{data: "edit_task_"},
		{data: "unknown_action"},
		{data: "tasks_1"},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := Parse(tt.data)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Argument-carrying kinds share the "task" suffix; decoding must keep them apart.
func TestParseOverlappingPrefixes(t *testing.T) {
	for _, data := range []string{"edit_task_3", "complete_task_3", "delete_task_3", "toggle_task_3"} {
		got, ok := Parse(data)
		assert.True(t, ok, data)
		assert.NotEqual(t, KindShowTask, got.Kind, "%s must not decode as a listing index", data)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := []Token{
		ShowTaskAt(3),
		EditTask(12),
		CompleteTask(12),
		DeleteTask(12),
		ToggleTask(12),
		ShowTasks(),
		BackToStart(),
		AddTask(),
	}
	for _, tok := range tokens {
		got, ok := Parse(tok.String())
		assert.True(t, ok, tok.String())
		assert.Equal(t, tok, got)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "task_5", ShowTaskAt(5).String())
	assert.Equal(t, "edit_task_9", EditTask(9).String())
	assert.Equal(t, "show_tasks", ShowTasks().String())
}
