package router

import (
	"time"

	tg "github.com/smartlegionlab/todo-app-tg-bot/core/telegram"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/callbacks"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that decodes the callback token and routes
// it through the registry by token kind.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		_ = c.Respond()

		tok, ok := callbacks.Parse(cb.Data)
		if !ok {
			extras := []slog.Attr{slog.String("reason", "bad_token")}
			return handleWithSummary(c, "callback.unknown", start, "skip", "ok", func() error {
				if opts.NotFound != nil {
					return opts.NotFound(c)
				}
				return nil
			}, extras...)
		}

		callbacks.StoreToken(c, tok)
		name := "callback." + normalizeHandlerName(string(tok.Kind))
		extras := []slog.Attr{slog.String("cb_key", string(tok.Kind))}
		if tok.HasArg() {
			extras = append(extras, slog.Int64("task_id", tok.Arg))
		}

		cbHandler, found := reg.GetCallback(string(tok.Kind))
		if !found || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
