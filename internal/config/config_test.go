package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.EmailEnabled())
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "staffing.json", `{
		"database_url": "postgres://staffing@localhost/staffing",
		"redis_addr": "localhost:6379",
		"queue_size": 8,
		"log_json": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://staffing@localhost/staffing", cfg.DatabaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.QueueSize)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 3, cfg.DefaultSkillLevel)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "staffing.yaml", "smtp_host: smtp.richat.mr\nsmtp_port: 465\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.True(t, cfg.Debug())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := writeFile(t, "staffing.json", `{"queue_size": 8, "storage_root": "/srv/cv"}`)
	t.Setenv("STAFFING_QUEUE_SIZE", "16")
	t.Setenv("STAFFING_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "/srv/cv", cfg.StorageRoot)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/staffing.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "staffing.json", `{ invalid json }`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, ".env", "STAFFING_TEST_ONLY_VALUE=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("STAFFING_TEST_ONLY_VALUE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("STAFFING_TEST_ONLY_VALUE"))

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero queue", func(c *Config) { c.QueueSize = 0 }, "queue_size"},
		{"negative redis db", func(c *Config) { c.RedisDB = -1 }, "redis_db"},
		{"skill level too high", func(c *Config) { c.DefaultSkillLevel = 6 }, "default_skill_level"},
		{"skill level zero", func(c *Config) { c.DefaultSkillLevel = 0 }, "default_skill_level"},
		{"bad smtp port", func(c *Config) { c.SMTPHost = "smtp"; c.SMTPPort = 70000 }, "smtp_port"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"empty storage root", func(c *Config) { c.StorageRoot = " " }, "storage_root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	cfg := Defaults()
	cfg.SMTPPort = 0
	assert.NoError(t, cfg.Validate(), "port is ignored while email is disabled")
}
