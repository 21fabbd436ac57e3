package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TASKTRACKER_CONFIG", "TASKTRACKER_DATA_DIR", "TASKTRACKER_STORAGE", "DATABASE_URL",
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "REMINDER_CHECK_INTERVAL", "SNOOZE_DURATION",
		"DAILY_REPORT_TIME", "HTTP_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "json", cfg.Storage)
	assert.Equal(t, filepath.Join("data", "tasktracker.db"), cfg.DatabaseURL)
	assert.Equal(t, time.Minute, cfg.ReminderCheckInterval)
	assert.Equal(t, 5*time.Minute, cfg.SnoozeDuration)
	assert.Equal(t, "09:00", cfg.DailyReportTime)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/tracker
storage: sqlite
reminder_check_interval: 30s
daily_report_time: "07:45"
http_addr: ":8080"
`), 0o644))
	t.Setenv("TASKTRACKER_CONFIG", path)
	t.Setenv("SNOOZE_DURATION", "10m")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tracker", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, filepath.Join("/var/lib/tracker", "tasktracker.db"), cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.ReminderCheckInterval)
	assert.Equal(t, 10*time.Minute, cfg.SnoozeDuration)
	assert.Equal(t, "07:45", cfg.DailyReportTime)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"storage":       {"TASKTRACKER_STORAGE": "postgres"},
		"report time":   {"DAILY_REPORT_TIME": "25:00"},
		"chat id":       {"TELEGRAM_CHAT_ID": "abc"},
		"interval":      {"REMINDER_CHECK_INTERVAL": "soon"},
		"chat no token": {"TELEGRAM_CHAT_ID": "7"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}

	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"", "9", "24:00", "10:60", "a:b"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
