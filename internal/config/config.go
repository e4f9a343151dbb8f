package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (токены шлюзов) берутся из переменных окружения
type Config struct {
	Server          ServerConfig        `toml:"server"`
	Database        DatabaseConfig      `toml:"database"`
	Logs            LogsConfig          `toml:"logs"`
	Metrics         MetricsConfig       `toml:"metrics"`
	CalendarService ServiceClientConfig `toml:"calendar_service"`
	NotifyService   ServiceClientConfig `toml:"notify_service"`
	Notifications   NotificationsConfig `toml:"notifications"`

	Secrets Secrets `toml:"-"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceClientConfig настройки клиента внешнего сервиса
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// NotificationsConfig настройки фонового диспетчера уведомлений
type NotificationsConfig struct {
	QueueSize     int `toml:"queue_size"`
	SMSMaxRetries int `toml:"sms_max_retries"`
}

// Secrets секреты из окружения (не храним токены в config.toml)
type Secrets struct {
	NotifyAPIToken string `envconfig:"NOTIFY_API_TOKEN"`
}

// Load загружает конфигурацию из toml-файла и окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := envconfig.Process("ftv", &cfg.Secrets); err != nil {
		return nil, fmt.Errorf("config: failed to read secrets from env: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "ftv-booking-service"
	}
	if cfg.Notifications.QueueSize == 0 {
		cfg.Notifications.QueueSize = 256
	}
	if cfg.Notifications.SMSMaxRetries == 0 {
		cfg.Notifications.SMSMaxRetries = 2
	}
}
