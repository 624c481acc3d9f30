package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"StockPulse/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" toml:"bot_token"`
		ChatID   string `yaml:"chat_id" toml:"chat_id"`
	} `yaml:"telegram" toml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url" toml:"base_url"`
		APIKey  string `yaml:"api_key" toml:"api_key"`
		Period  string `yaml:"period" toml:"period"`
	} `yaml:"data_source" toml:"data_source"`
	Watchlist []string `yaml:"watchlist" toml:"watchlist"`
	Schedule  struct {
		DailyCron   string `yaml:"daily_cron" toml:"daily_cron"`
		WeeklyCron  string `yaml:"weekly_cron" toml:"weekly_cron"`
		Concurrency int    `yaml:"concurrency" toml:"concurrency"`
	} `yaml:"schedule" toml:"schedule"`
	Watch struct {
		StateFile string `yaml:"state_file" toml:"state_file"`
	} `yaml:"watch" toml:"watch"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
	} `yaml:"database" toml:"database"`
	Log struct {
		Level   string `yaml:"level" toml:"level"`
		Console bool   `yaml:"console" toml:"console"`
	} `yaml:"log" toml:"log"`
	Proxy string `yaml:"proxy" toml:"proxy"`
}

// Load reads config from a YAML or TOML file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = splitSymbols(v)
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Period == "" {
		cfg.DataSource.Period = string(model.DefaultPeriod)
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"SPY", "QQQ", "AAPL"}
	}
	for i, s := range cfg.Watchlist {
		cfg.Watchlist[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.Concurrency <= 0 {
		cfg.Schedule.Concurrency = 4
	}
	if cfg.Watch.StateFile == "" {
		cfg.Watch.StateFile = "data/watch_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockpulse.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Period returns the configured history window.
func (c *Config) Period() model.Period {
	p, err := model.ParsePeriod(c.DataSource.Period)
	if err != nil {
		return model.DefaultPeriod
	}
	return p
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required")
	}
	if _, err := model.ParsePeriod(c.DataSource.Period); err != nil {
		return fmt.Errorf("data_source.period: %w", err)
	}
	if len(c.Watchlist) == 0 {
		return errors.New("watchlist must not be empty")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.DailyCron); err != nil {
		return fmt.Errorf("schedule.daily_cron: %w", err)
	}
	if _, err := parser.Parse(c.Schedule.WeeklyCron); err != nil {
		return fmt.Errorf("schedule.weekly_cron: %w", err)
	}
	return nil
}
