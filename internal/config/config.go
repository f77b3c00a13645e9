package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env             string    `mapstructure:"env"`               // current application environment (local, dev, production)
	LessonsJSONPath string    `mapstructure:"lessons_json_path"` // path to JSON file with languages and lesson tables
	Storage         Storage   `mapstructure:"storage"`
	Calendar        Calendar  `mapstructure:"calendar"`
	Telegram        Telegram  `mapstructure:"telegram"`
	Reminders       Reminders `mapstructure:"reminders"`
	Metrics         Metrics   `mapstructure:"metrics"`
	Log             Log       `mapstructure:"log"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Driver          string        `mapstructure:"driver"`            // sqlite, postgres or memory
	SQLitePath      string        `mapstructure:"sqlite_path"`       // database file for the sqlite driver
	URL             string        `mapstructure:"-"`                 // postgres connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the postgres connection string if it is configured.
func (s Storage) DSN() (string, error) {
	if s.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return s.URL, nil
}

// Calendar controls how days and weeks are cut.
type Calendar struct {
	Timezone  string `mapstructure:"timezone"`
	WeekStart string `mapstructure:"week_start"` // sunday or monday
}

// Weekday returns the configured first day of the week.
func (c Calendar) Weekday() time.Weekday {
	if strings.EqualFold(c.WeekStart, "monday") {
		return time.Monday
	}
	return time.Sunday
}

type Telegram struct {
	Enabled     bool   `mapstructure:"enabled"`
	Token       string `mapstructure:"-"`             // loaded from TELEGRAM_API_TOKEN
	OwnerChatID int64  `mapstructure:"owner_chat_id"` // the only chat the bot answers
	Debug       bool   `mapstructure:"debug"`
}

type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron expression
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables the rotating file sink
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine; the real environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("lessons_json_path", "assets/data/lessons.json")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "data/lingofusion.db")
	v.SetDefault("storage.max_connections", 10)
	v.SetDefault("storage.max_conn_lifetime", "30s")
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.owner_chat_id", 0)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 * * * *")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		cfg.Storage.URL = v.GetString("database_url")
		if cfg.Storage.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL: %w", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	if cfg.Telegram.Enabled {
		cfg.Telegram.Token = v.GetString("telegram_api_token")
		if cfg.Telegram.Token == "" {
			return nil, fmt.Errorf("TELEGRAM_API_TOKEN: %w", ErrMissingEnvironmentVariables)
		}
	}

	return &cfg, nil
}
