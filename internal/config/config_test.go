package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TELEGRAM_API_KEY", "STORE_DRIVER", "DATABASE_TYPE", "WORKERS", "RATE_WINDOW", "WEBHOOK_SECRET", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.StoreDriver != "sql" {
		t.Errorf("StoreDriver = %v, want sql", cfg.StoreDriver)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %v, want sqlite", cfg.DatabaseType)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %v, want 16", cfg.Workers)
	}
	if cfg.RateWindow != 10*time.Second {
		t.Errorf("RateWindow = %v, want 10s", cfg.RateWindow)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_API_KEY", "123:abc")
	t.Setenv("WEBHOOK_SECRET", "")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("WORKERS", "4")
	t.Setenv("MAX_RETRIES", "not-a-number")
	t.Setenv("RATE_WINDOW", "1m")
	t.Setenv("APP_ENV", "Production")

	cfg := Load()

	if cfg.StoreDriver != "redis" {
		t.Errorf("StoreDriver = %v, want redis", cfg.StoreDriver)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %v, want 4", cfg.Workers)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want default 3 on bad input", cfg.MaxRetries)
	}
	if cfg.RateWindow != time.Minute {
		t.Errorf("RateWindow = %v, want 1m", cfg.RateWindow)
	}
	if cfg.WebhookSecret != "123:abc" {
		t.Errorf("WebhookSecret = %v, want token fallback", cfg.WebhookSecret)
	}
	if !cfg.IsProduction() {
		t.Error("APP_ENV=Production should be production")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{TelegramToken: "t", StoreDriver: "sql", Workers: 1},
			wantErr: false,
		},
		{
			name:    "missing token",
			cfg:     Config{StoreDriver: "sql", Workers: 1},
			wantErr: true,
		},
		{
			name:    "unknown store",
			cfg:     Config{TelegramToken: "t", StoreDriver: "mongo", Workers: 1},
			wantErr: true,
		},
		{
			name:    "production without url",
			cfg:     Config{TelegramToken: "t", StoreDriver: "memory", Workers: 1, Environment: "production"},
			wantErr: true,
		},
		{
			name:    "no workers",
			cfg:     Config{TelegramToken: "t", StoreDriver: "redis", Workers: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
