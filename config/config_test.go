package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CRICSTATS_SERVER_PORT", "9191")
	t.Setenv("CRICSTATS_AI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Errorf("AI.APIKey = %q, want test-key", cfg.AI.APIKey)
	}
}

func TestValidateRejectsBadDriver(t *testing.T) {
	t.Setenv("CRICSTATS_DATABASE_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidateRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("CRICSTATS_DATABASE_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when postgres selected without dsn")
	}
}
