package main

import (
	"fmt"
	"log"

	"github.com/smartlegionlab/todo-app-tg-bot/app/bot"
	appconfig "github.com/smartlegionlab/todo-app-tg-bot/app/config"
	corecmd "github.com/smartlegionlab/todo-app-tg-bot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*appconfig.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return bot.Bootstrap(appCfg)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
