package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	appconfig "github.com/smartlegionlab/todo-app-tg-bot/app/config"
	"github.com/smartlegionlab/todo-app-tg-bot/app/services"
	"github.com/smartlegionlab/todo-app-tg-bot/app/storage"
	"github.com/smartlegionlab/todo-app-tg-bot/core/bootstrap"
	tg "github.com/smartlegionlab/todo-app-tg-bot/core/telegram"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/router"
	"github.com/smartlegionlab/todo-app-tg-bot/core/telegram/state"
)

// App owns the wired application: storage, services, conversation flow,
// and the Telegram handler set.
type App struct {
	cfg      *appconfig.Config
	db       *sqlx.DB
	services *services.Services
	flow     *Flow
	handlers *Handlers
}

// Bootstrap initializes infrastructure and wires the application layers.
func Bootstrap(cfg *appconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config provided")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	svcs := services.New(
		storage.NewUsers(res.DB),
		storage.NewTasks(res.DB),
	)
	sessions := state.NewMemoryManager()
	flow := NewFlow(cfg.Bot.Name, cfg.Bot.GithubURL, svcs, sessions)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		services: svcs,
		flow:     flow,
		handlers: NewHandlers(flow, svcs),
	}, nil
}

// TelegramRunOptions assembles routes and middleware for the bot runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	if err := a.handlers.Register(reg); err != nil {
		return tg.RunOptions{}, err
	}

	coreCfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: coreCfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(a.flow, reg, router.TextOptions{
		WizardHandler: a.handlers.WizardHandler,
	}))

	return tg.RunOptions{
		Config:      coreCfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(coreCfg, nil),
		Routes:      routes,
		OnStop: func(context.Context, tg.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
