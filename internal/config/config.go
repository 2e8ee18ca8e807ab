package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentService PaymentServiceConfig `toml:"payment_service"`
	Booking        BookingConfig        `toml:"booking"`
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentServiceConfig настройки клиента платёжного шлюза
type PaymentServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig политики жизненного цикла бронирований
// Единые для всего сервиса, сервисные центры их не переопределяют
type BookingConfig struct {
	PaymentTimeoutMinutes int `toml:"payment_timeout_minutes"`
	SweepIntervalMinutes  int `toml:"sweep_interval_minutes"`
	MinLeadMinutes        int `toml:"min_lead_minutes"`
	ModifyLeadMinutes     int `toml:"modify_lead_minutes"`
	ArrivalGraceMinutes   int `toml:"arrival_grace_minutes"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.PaymentTimeoutMinutes == 0 {
		c.Booking.PaymentTimeoutMinutes = domain.DefaultPaymentTimeoutMinutes
	}
	if c.Booking.SweepIntervalMinutes == 0 {
		c.Booking.SweepIntervalMinutes = domain.DefaultSweepIntervalMinutes
	}
	if c.Booking.MinLeadMinutes == 0 {
		c.Booking.MinLeadMinutes = domain.DefaultMinLeadMinutes
	}
	if c.Booking.ModifyLeadMinutes == 0 {
		c.Booking.ModifyLeadMinutes = domain.DefaultModifyLeadMinutes
	}
	if c.Booking.ArrivalGraceMinutes == 0 {
		c.Booking.ArrivalGraceMinutes = domain.DefaultArrivalGraceMinutes
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Booking.PaymentTimeoutMinutes < 0 {
		return fmt.Errorf("invalid booking.payment_timeout_minutes: %d", c.Booking.PaymentTimeoutMinutes)
	}
	if c.Booking.SweepIntervalMinutes <= 0 {
		return fmt.Errorf("invalid booking.sweep_interval_minutes: %d", c.Booking.SweepIntervalMinutes)
	}
	return nil
}
