package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Booking   Booking   `toml:"booking"`
	Scheduler Scheduler `toml:"scheduler"`
	Notify    Notify    `toml:"notify"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к Postgres
type Database struct {
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

// DSN строка подключения к Postgres
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Booking бизнес-константы клуба
type Booking struct {
	// MaxSims общее число симуляторов
	MaxSims int `toml:"max_sims"`
	// HoldMinutes время жизни pending-заявки
	HoldMinutes int `toml:"hold_minutes"`
	// MaxActiveBookingsPerUser лимит активных броней на пользователя
	MaxActiveBookingsPerUser int `toml:"max_active_bookings_per_user"`

	Timezone string `toml:"timezone"`

	OpenHour    int `toml:"open_hour"`
	OpenMinute  int `toml:"open_minute"`
	CloseHour   int `toml:"close_hour"`
	CloseMinute int `toml:"close_minute"`

	SlotStepMinutes  int `toml:"slot_step_minutes"`
	SafetyGapMinutes int `toml:"safety_gap_minutes"`

	// StaffIDs пользователи с правами администратора
	StaffIDs []int64 `toml:"staff_ids"`
}

// HoldDuration время жизни pending-заявки как Duration
func (b Booking) HoldDuration() time.Duration {
	return time.Duration(b.HoldMinutes) * time.Minute
}

// Scheduler интервалы и окна фоновых задач
type Scheduler struct {
	// TickSeconds период опроса для всех фоновых задач
	TickSeconds int `toml:"tick_seconds"`
	// AutoConfirmBeforeMinutes за сколько минут до старта автоподтверждать pending
	AutoConfirmBeforeMinutes int `toml:"auto_confirm_before_minutes"`
	// AutoCompleteAfterHours через сколько часов после окончания закрывать confirmed
	AutoCompleteAfterHours int `toml:"auto_complete_after_hours"`
	// RemindBeforeHours за сколько часов напоминать о подтвержденной брони
	RemindBeforeHours int `toml:"remind_before_hours"`
}

// Tick период опроса как Duration
func (s Scheduler) Tick() time.Duration {
	return time.Duration(s.TickSeconds) * time.Second
}

// AutoConfirmWindow окно автоподтверждения как Duration
func (s Scheduler) AutoConfirmWindow() time.Duration {
	return time.Duration(s.AutoConfirmBeforeMinutes) * time.Minute
}

// AutoCompleteDelay задержка автозавершения как Duration
func (s Scheduler) AutoCompleteDelay() time.Duration {
	return time.Duration(s.AutoCompleteAfterHours) * time.Hour
}

// RemindBefore окно напоминаний как Duration
func (s Scheduler) RemindBefore() time.Duration {
	return time.Duration(s.RemindBeforeHours) * time.Hour
}

// Notify настройки внешнего шлюза уведомлений
type Notify struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Booking: Booking{
			MaxSims:                  domain.DefaultMaxSims,
			HoldMinutes:              domain.DefaultHoldMinutes,
			MaxActiveBookingsPerUser: domain.DefaultMaxActiveBookingsPerUser,
			Timezone:                 "Asia/Yekaterinburg",
			OpenHour:                 domain.DefaultOpenHour,
			OpenMinute:               domain.DefaultOpenMinute,
			CloseHour:                domain.DefaultCloseHour,
			CloseMinute:              domain.DefaultCloseMinute,
			SlotStepMinutes:          domain.DefaultSlotStepMinutes,
			SafetyGapMinutes:         domain.DefaultSafetyGapMinutes,
		},
		Scheduler: Scheduler{
			TickSeconds:              60,
			AutoConfirmBeforeMinutes: domain.DefaultAutoConfirmBeforeMinutes,
			AutoCompleteAfterHours:   domain.DefaultAutoCompleteAfterHours,
			RemindBeforeHours:        domain.DefaultRemindBeforeHours,
		},
		Notify: Notify{
			Timeout: 5,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			ServiceName: "src-booking-service",
			Path:        "/metrics",
		},
	}
}

func (c *Config) validate() error {
	if c.Booking.MaxSims <= 0 {
		return fmt.Errorf("config: booking.max_sims must be positive")
	}
	if c.Booking.HoldMinutes <= 0 {
		return fmt.Errorf("config: booking.hold_minutes must be positive")
	}
	if c.Scheduler.TickSeconds <= 0 {
		return fmt.Errorf("config: scheduler.tick_seconds must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Notify.Enabled && c.Notify.URL == "" {
		return fmt.Errorf("config: notify.url is required when notify is enabled")
	}
	return nil
}
