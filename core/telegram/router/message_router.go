package router

import (
	"time"

	tg "github.com/smartlegionlab/todo-app-tg-bot/core/telegram"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Wizard is the minimal interface the text route needs to detect and feed
// an in-flight multi-step dialog.
type Wizard interface {
	InProgress(userID int64) bool
}

// TextOptions controls routing of free-form text updates.
type TextOptions struct {
	// WizardHandler consumes text while the sender has a dialog in progress.
	WizardHandler tele.HandlerFunc
	UnknownText   tele.HandlerFunc
}

// TextRoute builds the handler for plain text updates. Text belonging to an
// in-flight dialog goes to the wizard handler; anything else falls through to
// command lookup and the registered fallbacks.
func TextRoute(wiz Wizard, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if wiz != nil && opts.WizardHandler != nil && c.Sender() != nil && wiz.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "wizard", start, "", "", func() error {
				return opts.WizardHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
