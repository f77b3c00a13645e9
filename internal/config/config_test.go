package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	v := newTestViper(map[string]any{"telegram_api_token": "token"})

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Storage.Driver, DriverSQLite)
	}
	if cfg.Storage.MaxConnLifetime != 30*time.Second {
		t.Errorf("max_conn_lifetime = %v, want 30s", cfg.Storage.MaxConnLifetime)
	}
	if cfg.Telegram.Token != "token" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Calendar.Weekday() != time.Sunday {
		t.Errorf("week start = %v, want Sunday", cfg.Calendar.Weekday())
	}
	if cfg.LessonsJSONPath != "assets/data/lessons.json" {
		t.Errorf("lessons path = %q", cfg.LessonsJSONPath)
	}
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		want      error
	}{
		{
			name:      "telegram enabled without token",
			overrides: map[string]any{},
			want:      ErrMissingEnvironmentVariables,
		},
		{
			name: "postgres without url",
			overrides: map[string]any{
				"telegram.enabled": false,
				"storage.driver":   DriverPostgres,
			},
			want: ErrMissingEnvironmentVariables,
		},
		{
			name: "unknown driver",
			overrides: map[string]any{
				"telegram.enabled": false,
				"storage.driver":   "redis",
			},
			want: ErrUnknownStorageDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromViper_Postgres(t *testing.T) {
	v := newTestViper(map[string]any{
		"telegram.enabled": false,
		"storage.driver":   DriverPostgres,
		"database_url":     "postgres://localhost/lingofusion",
	})

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dsn, err := cfg.Storage.DSN()
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "postgres://localhost/lingofusion" {
		t.Errorf("dsn = %q", dsn)
	}
}

func TestCalendarWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"sunday", time.Sunday},
		{"Monday", time.Monday},
		{"", time.Sunday},
	}
	for _, tt := range tests {
		if got := (Calendar{WeekStart: tt.in}).Weekday(); got != tt.want {
			t.Errorf("Weekday(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
