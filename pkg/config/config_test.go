package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_CONFIG_NAME", "missing")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, cfg.Env)
	require.Equal(t, 8888, cfg.Server.Port)
	require.Equal(t, DBDriverPostgres, cfg.Database.Driver)
	require.Equal(t, 10*time.Second, cfg.Reminders.SendTimeout)
	require.Equal(t, 24, cfg.Reminders.Defaults.FirstReminderHours)
	require.True(t, cfg.Reminders.Defaults.IsActive)
}

func TestNew_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
database:
  driver: sqlite
  dsn: "file:letterpay.db"
pricing:
  default_amount: 4200
  rules:
    - match: birthday
      amount: 1500
reminders:
  send_timeout: 3s
  timezone: UTC
`), 0o600))
	t.Chdir(dir)
	t.Setenv("APP_CONFIG_FILE", file)
	t.Setenv("APP_REMINDERS_TRIGGER_SECRET", "s3cret")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, DBDriverSQLite, cfg.Database.Driver)
	require.Equal(t, int64(4200), cfg.Pricing.DefaultAmount)
	require.Len(t, cfg.Pricing.Rules, 1)
	require.Equal(t, "birthday", cfg.Pricing.Rules[0].Match)
	require.Equal(t, 3*time.Second, cfg.Reminders.SendTimeout)
	require.Equal(t, "s3cret", cfg.Reminders.TriggerSecret)

	loc, err := cfg.Reminders.Location()
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)
}

func TestRemindersConfig_LocationInvalid(t *testing.T) {
	_, err := RemindersConfig{Timezone: "Mars/Olympus"}.Location()
	require.Error(t, err)
}
