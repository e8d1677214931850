// Package callbacks defines the callback-data contract between rendered
// inline keyboards and the callback router. Button data is parsed into a
// closed set of typed actions before any handler runs, so overlapping
// prefixes cannot misroute a press.
package callbacks

import (
	"strconv"
	"strings"
)

// Kind identifies a callback action.
type Kind string

const (
	// KindShowTask opens task details; the argument is a 1-based position in
	// the user's task listing at render time, not a task id.
	KindShowTask Kind = "task"
	// KindEditTask starts the edit wizard for the task id argument.
	KindEditTask Kind = "edit_task"
	// KindCompleteTask marks the task id argument as completed.
	KindCompleteTask Kind = "complete_task"
	// KindDeleteTask removes the task id argument.
	KindDeleteTask Kind = "delete_task"
	// KindToggleTask flips the completed flag of the task id argument.
	KindToggleTask Kind = "toggle_task"
	// KindShowTasks renders the task list.
	KindShowTasks Kind = "show_tasks"
	// KindBackToStart renders the welcome screen.
	KindBackToStart Kind = "back_to_start"
	// KindAddTask starts the creation wizard.
	KindAddTask Kind = "add_task"
)

// bareKinds are tokens without an argument; they must match exactly.
var bareKinds = map[string]Kind{
	string(KindShowTasks):   KindShowTasks,
	string(KindBackToStart): KindBackToStart,
	string(KindAddTask):     KindAddTask,
}

// argKinds are tokens carrying a numeric argument, ordered most specific
// first so a bare "task_" prefix can never absorb the others.
var argKinds = []Kind{
	KindEditTask,
	KindCompleteTask,
	KindDeleteTask,
	KindToggleTask,
	KindShowTask,
}

// Token is a decoded callback action.
type Token struct {
	Kind Kind
	// Arg is the listing index for KindShowTask, the task id for the other
	// argument-carrying kinds, and zero for bare actions.
	Arg int64
}

// HasArg reports whether the token's kind carries an argument.
func (t Token) HasArg() bool {
	switch t.Kind {
	case KindShowTask, KindEditTask, KindCompleteTask, KindDeleteTask, KindToggleTask:
		return true
	}
	return false
}

// String renders the token back into callback data for a keyboard button.
func (t Token) String() string {
	if t.HasArg() {
		return string(t.Kind) + "_" + strconv.FormatInt(t.Arg, 10)
	}
	return string(t.Kind)
}

// ShowTaskAt builds a details token for the n-th listed task (1-based).
func ShowTaskAt(n int) Token { return Token{Kind: KindShowTask, Arg: int64(n)} }

// EditTask builds an edit-wizard token for the task id.
func EditTask(id int64) Token { return Token{Kind: KindEditTask, Arg: id} }

// CompleteTask builds a mark-completed token for the task id.
func CompleteTask(id int64) Token { return Token{Kind: KindCompleteTask, Arg: id} }

// DeleteTask builds a delete token for the task id.
func DeleteTask(id int64) Token { return Token{Kind: KindDeleteTask, Arg: id} }

// ToggleTask builds a toggle token for the task id.
func ToggleTask(id int64) Token { return Token{Kind: KindToggleTask, Arg: id} }

// ShowTasks builds the task-list token.
func ShowTasks() Token { return Token{Kind: KindShowTasks} }

// BackToStart builds the welcome-screen token.
func BackToStart() Token { return Token{Kind: KindBackToStart} }

// AddTask builds the creation-wizard token.
func AddTask() Token { return Token{Kind: KindAddTask} }

// Parse decodes raw callback data into a Token. It tolerates the "\f" marker
// Telebot prepends to data produced through its own button constructors.
func Parse(data string) (Token, bool) {
	raw := strings.TrimPrefix(data, "\f")
	raw = strings.TrimPrefix(raw, "\\f")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Token{}, false
	}

	if kind, ok := bareKinds[raw]; ok {
		return Token{Kind: kind}, true
	}

	for _, kind := range argKinds {
		prefix := string(kind) + "_"
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		arg, err := strconv.ParseInt(raw[len(prefix):], 10, 64)
		if err != nil {
			return Token{}, false
		}
		return Token{Kind: kind, Arg: arg}, true
	}

	return Token{}, false
}
