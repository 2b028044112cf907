package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "appointments"
password = "secret"

[redis]
enabled = true
addr = "redis:6379"

[reminders]
enabled = true
schedule = "30 8 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout, "missing keys keep defaults")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres://postgres:secret@db:5432/appointments?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 86400, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "30 8 * * *", cfg.Reminders.Schedule)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
password = "from-file"
`)
	t.Setenv("SCHEDULING_DATABASE_PASSWORD", "from-env")
	t.Setenv("SCHEDULING_SERVER_HTTP_PORT", "8181")
	t.Setenv("SCHEDULING_LOGS_LEVEL", "debug")
	t.Setenv("SCHEDULING_WHATSAPP_ENABLED", "true")
	t.Setenv("SCHEDULING_WHATSAPP_ACCOUNT_SID", "AC123")
	t.Setenv("SCHEDULING_WHATSAPP_AUTH_TOKEN", "token")
	t.Setenv("SCHEDULING_WHATSAPP_FROM_NUMBER", "+15550000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.WhatsApp.Enabled)
	assert.Equal(t, "AC123", cfg.WhatsApp.AccountSID)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_BrokenFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "no database host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Logs.Level = "trace" }},
		{name: "relative metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }},
		{name: "redis without addr", mutate: func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addr = ""
		}},
		{name: "whatsapp without credentials", mutate: func(c *Config) { c.WhatsApp.Enabled = true }},
		{name: "bad cron", mutate: func(c *Config) {
			c.Reminders.Enabled = true
			c.Reminders.Schedule = "daily"
		}},
		{name: "zero lead days", mutate: func(c *Config) {
			c.Reminders.Enabled = true
			c.Reminders.LeadDays = 0
		}},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
