package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	Storage     string `yaml:"storage"` // json or sqlite
	DatabaseURL string `yaml:"database_url"`

	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	ReminderCheckInterval time.Duration `yaml:"reminder_check_interval"`
	SnoozeDuration        time.Duration `yaml:"snooze_duration"`
	DailyReportTime       string        `yaml:"daily_report_time"`

	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DataDir:               "data",
		Storage:               "json",
		ReminderCheckInterval: time.Minute,
		SnoozeDuration:        5 * time.Minute,
		DailyReportTime:       "09:00",
		LogLevel:              "info",
	}
}

// Load reads the optional YAML file at path (or $TASKTRACKER_CONFIG), then
// applies environment overrides and defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("TASKTRACKER_CONFIG"))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = filepath.Join(cfg.DataDir, "tasktracker.db")
	}
	if cfg.ReminderCheckInterval <= 0 {
		cfg.ReminderCheckInterval = time.Minute
	}
	if cfg.SnoozeDuration <= 0 {
		cfg.SnoozeDuration = 5 * time.Minute
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage must be json or sqlite, got %q", c.Storage)
	}
	if c.DailyReportTime != "" {
		if _, _, err := ParseClock(c.DailyReportTime); err != nil {
			return fmt.Errorf("daily_report_time: %w", err)
		}
	}
	if c.TelegramChatID != 0 && c.TelegramToken == "" {
		return errors.New("telegram_chat_id is set but TELEGRAM_TOKEN is empty")
	}
	return nil
}

// ParseClock parses an HH:MM time of day.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hour, minute, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DataDir, "TASKTRACKER_DATA_DIR")
	setString(&cfg.Storage, "TASKTRACKER_STORAGE")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.TelegramToken, "TELEGRAM_TOKEN")
	setString(&cfg.DailyReportTime, "DAILY_REPORT_TIME")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if err := setDuration(&cfg.ReminderCheckInterval, "REMINDER_CHECK_INTERVAL"); err != nil {
		return err
	}
	return setDuration(&cfg.SnoozeDuration, "SNOOZE_DURATION")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	*dst = d
	return nil
}
