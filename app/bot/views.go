package bot

import (
	"fmt"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/callbacks"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/format"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/keyboard"
)

const (
	msgTitleTooLong      = "⚠️ The name is too long. Please enter a name no longer than 50 characters:"
	msgEditTitleTooLong  = "⚠️ The title is too long. Please., enter a name no longer than 50 characters:"
	msgAskDescription    = "Now enter a description for your task:"
	msgAskNewDescription = "Now enter a new description:"
	msgCompleted         = "The task is marked as completed!"
	msgNotCompleted      = "The task is marked as not completed!"
	msgDeleted           = "🔥 Task deleted!"
	msgTaskGone          = "This task no longer exists."
	msgNoTasks           = "You have no tasks."
	msgInternalError     = "⚠️ Something went wrong. Please try again."
)

func promptTitle(fullName string) string {
	return fmt.Sprintf("%s enter the name of your task: ", format.EscapeHTML(fullName))
}

func promptEditTitle(oldTitle string) string {
	return fmt.Sprintf("Old name:\n%s\nEnter a new task name:", format.EscapeHTML(oldTitle))
}

func msgTaskAdded(title string) string {
	return fmt.Sprintf("Task '%s' added!", format.EscapeHTML(title))
}

func msgTaskUpdated(title string) string {
	return fmt.Sprintf("Task updated: '%s'!", format.EscapeHTML(title))
}

func welcomeScreen(fullName, appName, githubURL string, completed, total int) Screen {
	text := fmt.Sprintf(
		"%s! Welcome to %s.\n\nTo view your tasks, click \"My tasks\"",
		format.Bold(fullName), format.Bold(appName),
	)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "✚ Add task", Data: callbacks.AddTask().String()},
		{Text: fmt.Sprintf("📝 My tasks [%d/%d]", completed, total), Data: callbacks.ShowTasks().String()},
		{Text: "🐱 GitHub", URL: githubURL},
	})
	return Screen{Text: text, Markup: markup}
}

func taskListScreen(fullName string, tasks []domain.Task) Screen {
	if len(tasks) == 0 {
		markup := keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "◀️ To the main page", Data: callbacks.BackToStart().String()},
		})
		return Screen{Text: msgNoTasks, Markup: markup}
	}

	buttons := make([]keyboard.InlineBtn, 0, len(tasks)+1)
	for n, task := range tasks {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: fmt.Sprintf("%s %s", task.StatusEmoji(), task.Title),
			Data: callbacks.ShowTaskAt(n + 1).String(),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text: "◀️ Back",
		Data: callbacks.BackToStart().String(),
	})

	text := fmt.Sprintf("%s, here are your tasks:", format.Bold(fullName))
	return Screen{Text: text, Markup: keyboard.InlineButtons(buttons)}
}

func taskDetailsScreen(task domain.Task) Screen {
	text := fmt.Sprintf("📝 Task:\n\n%s\n\n", format.EscapeHTML(task.Title))
	if task.Description != "" {
		text += fmt.Sprintf("%s\n\n", format.EscapeHTML(task.Description))
	}
	text += fmt.Sprintf("⏳ Status: %s\n", task.StatusText())
	if !task.CreatedAt.IsZero() {
		text += fmt.Sprintf("📅 Created: %s\n", task.CreatedAt.Format("2006-01-02"))
	}

	toggleText := "✅ Mark as done"
	if task.Completed {
		toggleText = "❌ Mark as not completed"
	}
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "✏️ Change", Data: callbacks.EditTask(task.ID).String()},
		{Text: toggleText, Data: callbacks.ToggleTask(task.ID).String()},
		{Text: "🔥 Delete", Data: callbacks.DeleteTask(task.ID).String()},
		{Text: "◀️ To the tasks", Data: callbacks.ShowTasks().String()},
	})
	return Screen{Text: text, Markup: markup}
}
