package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/smartlegionlab/todo-app-tg-bot/core/config"
	coredatabase "github.com/smartlegionlab/todo-app-tg-bot/core/database"
)

// BotConfig holds presentation settings for the to-do bot.
type BotConfig struct {
	Name      string `yaml:"name" envconfig:"BOT_NAME"`
	GithubURL string `yaml:"github_url" envconfig:"BOT_GITHUB_URL"`
}

// Config aggregates core runtime configuration with app-specific sections.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Bot      BotConfig           `yaml:"bot"`
	Database coredatabase.Config `yaml:"database"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}

	if cfg.Bot.Name == "" {
		cfg.Bot.Name = "Smart To-Do List"
	}
	if cfg.Bot.GithubURL == "" {
		cfg.Bot.GithubURL = "https://github.com/smartlegionlab/todo-app-tg-bot"
	}
	return &cfg, nil
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}
