package bot

import (
	"context"
	"sync"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/smartlegionlab/todo-app-tg-bot/app/domain"
	"github.com/smartlegionlab/todo-app-tg-bot/app/services"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
	"github.com/smartlegionlab/todo-app-tg-bot/core/logger"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/state"
)

// Wizard states for the two-step create and edit dialogs.
const (
	StateAwaitingTaskTitle       state.State = "awaiting_task_title"
	StateAwaitingTaskDescription state.State = "awaiting_task_description"
	StateAwaitingEditTitle       state.State = "awaiting_edit_title"
	StateAwaitingEditDescription state.State = "awaiting_edit_description"
)

// Session scratch keys.
const (
	scratchPendingTitle  = "pending_title"
	scratchEditingTaskID = "editing_task_id"
)

// Screen is one outbound message: text (HTML) plus an optional inline keyboard.
type Screen struct {
	Text   string
	Markup *tele.ReplyMarkup
}

// Flow implements the bot's conversation logic as pure screen transitions,
// keeping Telegram transport concerns out of the decision code.
type Flow struct {
	appName   string
	githubURL string

	services *services.Services
	sessions state.Manager

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewFlow builds a Flow over the given services and session manager.
func NewFlow(appName, githubURL string, svcs *services.Services, sessions state.Manager) *Flow {
	return &Flow{
		appName:   appName,
		githubURL: githubURL,
		services:  svcs,
		sessions:  sessions,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// userLock returns the per-user mutex guarding wizard state transitions.
// Telebot handles each update in its own goroutine, so two texts from the
// same chat may otherwise interleave mid-wizard.
func (f *Flow) userLock(userID int64) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[userID] = l
	}
	return l
}

// InProgress reports whether the user has a wizard in flight.
func (f *Flow) InProgress(userID int64) bool {
	return f.sessions.InProgress(userID)
}

// Start registers the visit and renders the main menu.
func (f *Flow) Start(ctx context.Context, userID int64, fullName string) ([]Screen, error) {
	user, err := f.services.Users.RegisterVisit(ctx, userID, fullName)
	if err != nil {
		return nil, err
	}
	return []Screen{f.mainMenu(ctx, user)}, nil
}

func (f *Flow) mainMenu(ctx context.Context, user domain.User) Screen {
	completed, total, err := f.services.Tasks.Counts(ctx, user.ID)
	if err != nil {
		logger.Warn(ctx, "bot.flow", "counts.fail",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
	}
	return welcomeScreen(user.FullName, f.appName, f.githubURL, completed, total)
}

// ShowTasks renders the task list.
func (f *Flow) ShowTasks(ctx context.Context, userID int64, fullName string) ([]Screen, error) {
	tasks, err := f.services.Tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return []Screen{taskListScreen(fullName, tasks)}, nil
}

// ShowTaskAt renders details for the task at 1-based position n of the user's
// list. An out-of-range position is ignored: the list may have changed since
// the keyboard was rendered.
func (f *Flow) ShowTaskAt(ctx context.Context, userID int64, n int) ([]Screen, error) {
	tasks, err := f.services.Tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(tasks) {
		logger.Debug(ctx, "bot.flow", "task.index.out_of_range",
			slog.Int64("user_id", userID),
			slog.Int("index", n),
			slog.Int("count", len(tasks)),
		)
		return nil, nil
	}
	return []Screen{taskDetailsScreen(tasks[n-1])}, nil
}

// StartAdd begins the task creation wizard. A wizard already in progress is
// overwritten: the button press signals clear intent to start over.
func (f *Flow) StartAdd(_ context.Context, userID int64, fullName string) ([]Screen, error) {
	l := f.userLock(userID)
	l.Lock()
	defer l.Unlock()

	f.sessions.Clear(userID)
	f.sessions.SetState(userID, StateAwaitingTaskTitle)
	return []Screen{{Text: promptTitle(fullName)}}, nil
}

// StartEdit begins the edit wizard for the given task. A vanished task
// degrades to a notice plus a fresh list.
func (f *Flow) StartEdit(ctx context.Context, userID int64, fullName string, taskID int64) ([]Screen, error) {
	task, err := f.services.Tasks.Get(ctx, taskID)
	if err != nil {
		if storage.IsNotFound(err) {
			return f.taskGone(ctx, userID, fullName)
		}
		return nil, err
	}

	l := f.userLock(userID)
	l.Lock()
	defer l.Unlock()

	f.sessions.Clear(userID)
	f.sessions.SetState(userID, StateAwaitingEditTitle)
	f.sessions.SetTemp(userID, scratchEditingTaskID, taskID)
	return []Screen{{Text: promptEditTitle(task.Title)}}, nil
}

// CompleteTask marks the task done and re-renders the list.
func (f *Flow) CompleteTask(ctx context.Context, userID int64, fullName string, taskID int64) ([]Screen, error) {
	if err := f.services.Tasks.SetCompleted(ctx, taskID, true); err != nil {
		if storage.IsNotFound(err) {
			return f.taskGone(ctx, userID, fullName)
		}
		return nil, err
	}
	return f.withNotice(ctx, userID, fullName, msgCompleted)
}

// ToggleTask flips the task's completed flag and re-renders the list.
func (f *Flow) ToggleTask(ctx context.Context, userID int64, fullName string, taskID int64) ([]Screen, error) {
	completed, err := f.services.Tasks.Toggle(ctx, taskID)
	if err != nil {
		if storage.IsNotFound(err) {
			return f.taskGone(ctx, userID, fullName)
		}
		return nil, err
	}
	notice := msgNotCompleted
	if completed {
		notice = msgCompleted
	}
	return f.withNotice(ctx, userID, fullName, notice)
}

// DeleteTask removes the task and re-renders the list.
func (f *Flow) DeleteTask(ctx context.Context, userID int64, fullName string, taskID int64) ([]Screen, error) {
	if err := f.services.Tasks.Delete(ctx, taskID); err != nil {
		if storage.IsNotFound(err) {
			return f.taskGone(ctx, userID, fullName)
		}
		return nil, err
	}
	return f.withNotice(ctx, userID, fullName, msgDeleted)
}

func (f *Flow) withNotice(ctx context.Context, userID int64, fullName, notice string) ([]Screen, error) {
	screens, err := f.ShowTasks(ctx, userID, fullName)
	if err != nil {
		return nil, err
	}
	return append([]Screen{{Text: notice}}, screens...), nil
}

func (f *Flow) taskGone(ctx context.Context, userID int64, fullName string) ([]Screen, error) {
	return f.withNotice(ctx, userID, fullName, msgTaskGone)
}

// HandleText consumes one text message while a wizard is in progress.
func (f *Flow) HandleText(ctx context.Context, userID int64, fullName, text string) ([]Screen, error) {
	l := f.userLock(userID)
	l.Lock()
	defer l.Unlock()

	switch f.sessions.GetState(userID) {
	case StateAwaitingTaskTitle:
		if err := domain.ValidateTitle(text); err != nil {
			return []Screen{{Text: msgTitleTooLong}}, nil
		}
		f.sessions.SetTemp(userID, scratchPendingTitle, text)
		f.sessions.SetState(userID, StateAwaitingTaskDescription)
		return []Screen{{Text: msgAskDescription}}, nil

	case StateAwaitingTaskDescription:
		title, _ := f.sessions.GetTempString(userID, scratchPendingTitle)
		task, err := f.services.Tasks.Create(ctx, userID, title, text)
		if err != nil {
			return nil, err
		}
		f.sessions.Clear(userID)

		user, err := f.services.Users.Get(ctx, userID)
		if err != nil {
			user = domain.User{ID: userID, FullName: fullName}
		}
		return []Screen{
			{Text: msgTaskAdded(task.Title)},
			f.mainMenu(ctx, user),
		}, nil

	case StateAwaitingEditTitle:
		if err := domain.ValidateTitle(text); err != nil {
			return []Screen{{Text: msgEditTitleTooLong}}, nil
		}
		f.sessions.SetTemp(userID, scratchPendingTitle, text)
		f.sessions.SetState(userID, StateAwaitingEditDescription)
		return []Screen{{Text: msgAskNewDescription}}, nil

	case StateAwaitingEditDescription:
		taskID, ok := f.sessions.GetTempInt64(userID, scratchEditingTaskID)
		title, _ := f.sessions.GetTempString(userID, scratchPendingTitle)
		if !ok {
			f.sessions.Clear(userID)
			return f.ShowTasks(ctx, userID, fullName)
		}
		if err := f.services.Tasks.UpdateContent(ctx, taskID, title, text); err != nil {
			if storage.IsNotFound(err) {
				f.sessions.Clear(userID)
				return f.taskGone(ctx, userID, fullName)
			}
			// Session stays intact so the next message retries this step.
			return nil, err
		}
		f.sessions.Clear(userID)
		screens, err := f.ShowTasks(ctx, userID, fullName)
		if err != nil {
			return nil, err
		}
		return append([]Screen{{Text: msgTaskUpdated(title)}}, screens...), nil
	}

	return nil, nil
}
