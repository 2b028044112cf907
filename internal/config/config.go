package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// EnvPrefix префикс переменных окружения, например SCHEDULING_DATABASE_PASSWORD.
// Имена полей разбиваются по словам: HTTPPort -> SCHEDULING_SERVER_HTTP_PORT.
const EnvPrefix = "SCHEDULING"

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	WhatsApp  WhatsAppConfig  `toml:"whatsapp"`
	Reminders RemindersConfig `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// RedisConfig хранилище ключей идемпотентности
type RedisConfig struct {
	Enabled          bool   `toml:"enabled" split_words:"true"`
	Addr             string `toml:"addr" split_words:"true"`
	Password         string `toml:"password" split_words:"true"`
	DB               int    `toml:"db" split_words:"true"`
	IdempotencyTTL   int    `toml:"idempotency_ttl" split_words:"true"`   // секунды
	PendingTTL       int    `toml:"pending_ttl" split_words:"true"`       // секунды
	OperationTimeout int    `toml:"operation_timeout" split_words:"true"` // секунды
}

// WhatsAppConfig уведомления через Twilio
type WhatsAppConfig struct {
	Enabled       bool   `toml:"enabled" split_words:"true"`
	AccountSID    string `toml:"account_sid" split_words:"true"`
	AuthToken     string `toml:"auth_token" split_words:"true"`
	FromNumber    string `toml:"from_number" split_words:"true"`
	PublicBaseURL string `toml:"public_base_url" split_words:"true"`
}

// RemindersConfig воркер напоминаний
type RemindersConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Schedule string `toml:"schedule" split_words:"true"`
	LeadDays int    `toml:"lead_days" split_words:"true"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduling",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "scheduling_service",
		},
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			IdempotencyTTL:   86400,
			PendingTTL:       30,
			OperationTimeout: 2,
		},
		Reminders: RemindersConfig{
			Schedule: "0 9 * * *",
			LeadDays: 1,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и применяет переменные
// окружения с префиксом SCHEDULING. Отсутствующий файл не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: server.shutdown_timeout must not be negative")
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port must be in 1..65535, got %d", c.Database.Port)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("config: database pool sizes must not be negative")
	}

	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logs.level must be one of debug|info|warn|error, got %q", c.Logs.Level)
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("config: metrics.path must start with '/'")
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.IdempotencyTTL <= 0 || c.Redis.PendingTTL <= 0 {
			return fmt.Errorf("config: redis TTLs must be positive")
		}
	}

	if c.WhatsApp.Enabled {
		if c.WhatsApp.AccountSID == "" || c.WhatsApp.AuthToken == "" || c.WhatsApp.FromNumber == "" {
			return fmt.Errorf("config: whatsapp.account_sid, auth_token and from_number are required when whatsapp is enabled")
		}
	}

	if c.Reminders.Enabled {
		if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
			return fmt.Errorf("config: invalid reminders.schedule %q: %w", c.Reminders.Schedule, err)
		}
		if c.Reminders.LeadDays < 1 {
			return fmt.Errorf("config: reminders.lead_days must be at least 1")
		}
	}

	return nil
}
