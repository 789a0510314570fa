package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Redis           RedisConfig           `toml:"redis"`
	CalendarService CalendarServiceConfig `toml:"calendar_service"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Logs            LogsConfig            `toml:"logs"`
	Engine          EngineConfig          `toml:"engine"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для временных удержаний слотов
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// CalendarServiceConfig внешний сервис занятости календаря
// Пустой URL отключает интеграцию
type CalendarServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LogsConfig настройки логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

// EngineConfig настройки расчета доступности
type EngineConfig struct {
	MaxRangeDays    int    `toml:"max_range_days"`
	HoldTTLSeconds  int    `toml:"hold_ttl_seconds"`
	DefaultTimezone string `toml:"default_timezone"`
}

// HoldTTL время жизни удержания слота
func (e EngineConfig) HoldTTL() time.Duration {
	return time.Duration(e.HoldTTLSeconds) * time.Second
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "scheduling",
		},
		CalendarService: CalendarServiceConfig{
			Timeout: 3,
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling_service",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Engine: EngineConfig{
			MaxRangeDays:    62,
			HoldTTLSeconds:  600,
			DefaultTimezone: "UTC",
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv переопределяет секреты из переменных окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if strings.TrimSpace(c.Database.Host) == "" {
		return fmt.Errorf("database.host is required")
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be in 1..65535, got %d", c.Database.Port)
	}

	if strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required")
	}

	if c.CalendarService.URL != "" {
		if _, err := url.ParseRequestURI(c.CalendarService.URL); err != nil {
			return fmt.Errorf("invalid calendar_service.url: %w", err)
		}
		if c.CalendarService.Timeout <= 0 {
			return fmt.Errorf("calendar_service.timeout must be positive")
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}

	if _, err := logrus.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("invalid logs.level %q: %w", c.Logs.Level, err)
	}

	if c.Engine.MaxRangeDays < 1 || c.Engine.MaxRangeDays > 366 {
		return fmt.Errorf("engine.max_range_days must be in 1..366, got %d", c.Engine.MaxRangeDays)
	}
	if c.Engine.HoldTTLSeconds <= 0 {
		return fmt.Errorf("engine.hold_ttl_seconds must be positive")
	}
	if _, err := time.LoadLocation(c.Engine.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid engine.default_timezone %q: %w", c.Engine.DefaultTimezone, err)
	}

	return nil
}
