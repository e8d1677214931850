package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/smartlegionlab/todo-app-tg-bot/app/services"
	tg "github.com/smartlegionlab/todo-app-tg-bot/core/telegram"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/callbacks"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/commands"
	tghelpers "github.com/smartlegionlab/todo-app-tg-bot/core/telegram/helpers"
)

// Handlers glues Flow screens onto the Telegram transport.
type Handlers struct {
	flow     *Flow
	services *services.Services
}

// NewHandlers builds the Telegram handler set over the given flow.
func NewHandlers(flow *Flow, svcs *services.Services) *Handlers {
	return &Handlers{flow: flow, services: svcs}
}

// Register wires commands and callback handlers into the registry.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Open the main menu",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.onStats,
		Description: "Show bot statistics",
		AdminOnly:   true,
		Hidden:      true,
	})

	cbs := map[callbacks.Kind]tele.HandlerFunc{
		callbacks.KindAddTask:      h.onAddTask,
		callbacks.KindShowTasks:    h.onShowTasks,
		callbacks.KindBackToStart:  h.onStart,
		callbacks.KindShowTask:     h.onShowTask,
		callbacks.KindEditTask:     h.onEditTask,
		callbacks.KindCompleteTask: h.onCompleteTask,
		callbacks.KindToggleTask:   h.onToggleTask,
		callbacks.KindDeleteTask:   h.onDeleteTask,
	}
	for kind, handler := range cbs {
		if err := reg.RegisterCallback(string(kind), handler); err != nil {
			return err
		}
	}
	return nil
}

// WizardHandler consumes text messages while a wizard is in progress.
func (h *Handlers) WizardHandler(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := h.flow.HandleText(ctx, user.ID, senderName(user), c.Text())
	return h.respond(c, screens, err)
}

// respond renders the screens, or a plain failure notice when the flow
// errored. The error still propagates so the router logs the outcome.
func (h *Handlers) respond(c tele.Context, screens []Screen, err error) error {
	if err != nil {
		_ = tghelpers.SendText(c, msgInternalError)
		return err
	}
	return h.render(c, screens)
}

func (h *Handlers) render(c tele.Context, screens []Screen) error {
	for _, s := range screens {
		if err := tghelpers.SendHTML(c, s.Text, s.Markup); err != nil {
			return err
		}
	}
	return nil
}

func senderName(user *tele.User) string {
	if user == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
}

func (h *Handlers) onStart(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := h.flow.Start(ctx, user.ID, senderName(user))
	return h.respond(c, screens, err)
}

func (h *Handlers) onAddTask(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := h.flow.StartAdd(ctx, user.ID, senderName(user))
	return h.respond(c, screens, err)
}

func (h *Handlers) onShowTasks(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := h.flow.ShowTasks(ctx, user.ID, senderName(user))
	return h.respond(c, screens, err)
}

func (h *Handlers) onShowTask(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	n, ok := callbacks.ArgInt64(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := h.flow.ShowTaskAt(ctx, user.ID, int(n))
	return h.respond(c, screens, err)
}

func (h *Handlers) onEditTask(c tele.Context) error {
	return h.taskAction(c, h.flow.StartEdit)
}

func (h *Handlers) onCompleteTask(c tele.Context) error {
	return h.taskAction(c, h.flow.CompleteTask)
}

func (h *Handlers) onToggleTask(c tele.Context) error {
	return h.taskAction(c, h.flow.ToggleTask)
}

func (h *Handlers) onDeleteTask(c tele.Context) error {
	return h.taskAction(c, h.flow.DeleteTask)
}

type taskActionFunc = func(ctx context.Context, userID int64, fullName string, taskID int64) ([]Screen, error)

func (h *Handlers) taskAction(c tele.Context, action taskActionFunc) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	taskID, ok := callbacks.ArgInt64(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	screens, err := action(ctx, user.ID, senderName(user), taskID)
	return h.respond(c, screens, err)
}

func (h *Handlers) onStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := h.services.Users.Count(ctx)
	if err != nil {
		return err
	}
	tasks, err := h.services.Tasks.Count(ctx)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("📊 Stats\n\nUsers: %d\nTasks: %d", users, tasks)
	return tghelpers.SendText(c, text)
}
