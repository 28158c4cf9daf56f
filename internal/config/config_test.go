package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "SESSION_SECRET", "STORE_DRIVER",
		"REDIS_URL", "FIRECRAWL_BASE_URL", "EXTRACT_RPS", "EXTRACT_BURST", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.StoreDriver != StoreRedis {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreRedis)
	}
	if !cfg.UsesFallbackSecret() {
		t.Error("expected fallback session secret when SESSION_SECRET is unset")
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 30 days", cfg.SessionTTL)
	}
	if cfg.ExtractRPS != 1 || cfg.ExtractBurst != 3 {
		t.Errorf("extract pacing = %v/%d, want 1/3", cfg.ExtractRPS, cfg.ExtractBurst)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("CORSAllowedOrigins = %v, want nil", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("EXTRACT_RPS", "0.5")
	t.Setenv("EXTRACT_BURST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://wish.example.com ,")
	t.Setenv("ENV", "production")

	cfg := Load()

	if cfg.UsesFallbackSecret() {
		t.Error("expected configured session secret")
	}
	if cfg.StoreDriver != StoreMySQL {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreMySQL)
	}
	if cfg.ExtractRPS != 0.5 {
		t.Errorf("ExtractRPS = %v, want 0.5", cfg.ExtractRPS)
	}
	if cfg.ExtractBurst != 3 {
		t.Errorf("ExtractBurst = %d, want fallback 3", cfg.ExtractBurst)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://wish.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "redis configured", cfg: Config{StoreDriver: StoreRedis, RedisURL: "redis://localhost:6379"}},
		{name: "redis missing url", cfg: Config{StoreDriver: StoreRedis}, wantErr: ErrRedisURLRequired},
		{name: "mysql configured", cfg: Config{StoreDriver: StoreMySQL, DatabaseDSN: "u:p@tcp(db)/wish"}},
		{name: "mysql missing dsn", cfg: Config{StoreDriver: StoreMySQL}, wantErr: ErrDatabaseDSNRequired},
		{name: "unknown driver", cfg: Config{StoreDriver: "etcd"}, wantErr: ErrUnknownStoreDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
