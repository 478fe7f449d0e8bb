// Package config loads the service configuration from an optional file, the
// environment (STAFFING_ prefix) and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STAFFING_DATABASE_URL
const EnvPrefix = "STAFFING"

// Config holds every runtime setting. All fields have defaults; see Defaults.
type Config struct {
	// Persistence
	DatabaseURL   string `mapstructure:"database_url"`   // PostgreSQL URL; empty selects the in-memory store
	RedisAddr     string `mapstructure:"redis_addr"`     // empty selects the in-process score cache
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	StorageRoot   string `mapstructure:"storage_root"` // directory holding standardized_cvs/

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	// Background skill extraction
	QueueSize         int `mapstructure:"queue_size"`
	DefaultSkillLevel int `mapstructure:"default_skill_level"`

	// Validation emails; empty host disables them
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		StorageRoot:       ".",
		LogLevel:          "info",
		QueueSize:         64,
		DefaultSkillLevel: 3,
		SMTPPort:          587,
		SMTPFrom:          "staffing@richat-partners.com",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("redis_addr", d.RedisAddr)
	v.SetDefault("redis_password", d.RedisPassword)
	v.SetDefault("redis_db", d.RedisDB)
	v.SetDefault("storage_root", d.StorageRoot)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("queue_size", d.QueueSize)
	v.SetDefault("default_skill_level", d.DefaultSkillLevel)
	v.SetDefault("smtp_host", d.SMTPHost)
	v.SetDefault("smtp_port", d.SMTPPort)
	v.SetDefault("smtp_username", d.SMTPUsername)
	v.SetDefault("smtp_password", d.SMTPPassword)
	v.SetDefault("smtp_from", d.SMTPFrom)
}

// LoadEnvFile exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads .env, then the optional config file at path (JSON, YAML or TOML
// by extension), then STAFFING_* environment variables, which win.
func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.QueueSize <= 0 {
		return fmt.Errorf("config error: 'queue_size' must be positive")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.DefaultSkillLevel < 1 || c.DefaultSkillLevel > 5 {
		return fmt.Errorf("config error: 'default_skill_level' must be between 1 and 5")
	}
	if c.SMTPHost != "" && (c.SMTPPort < 1 || c.SMTPPort > 65535) {
		return fmt.Errorf("config error: 'smtp_port' must be between 1 and 65535")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	if strings.TrimSpace(c.StorageRoot) == "" {
		return fmt.Errorf("config error: 'storage_root' must not be empty")
	}
	return nil
}

// Debug reports whether debug logging is enabled
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// EmailEnabled reports whether validation emails should be sent
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}
