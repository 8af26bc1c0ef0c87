package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRead_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
jwt:
  secret: file-secret
profile:
  daily_calorie_goal: 1800
`)

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Profile.DailyCalorieGoal != 1800 {
		t.Errorf("DailyCalorieGoal = %v, want 1800", cfg.Profile.DailyCalorieGoal)
	}
	// untouched sections fall back to defaults
	if cfg.Profile.ProteinGoal != 150 || cfg.Profile.Weight != 70 {
		t.Errorf("profile defaults not applied: %+v", cfg.Profile)
	}
	if cfg.RateLimit.LoginBurst != 5 {
		t.Errorf("LoginBurst = %d, want 5", cfg.RateLimit.LoginBurst)
	}
}

func TestRead_EnvOverride(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: file-secret\n")
	t.Setenv("BF_SERVER_PORT", "9000")
	t.Setenv("BF_JWT_SECRET", "env-secret")

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.JWT.Secret)
	}
}

func TestRead_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BF_JWT_SECRET", "only-env")

	cfg, err := read(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.JWT.PurgeSchedule != "@every 1h" {
		t.Errorf("JWT.PurgeSchedule = %q, want @every 1h", cfg.JWT.PurgeSchedule)
	}
}

func TestRead_RequiresSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 3000\n")

	if _, err := read(path); err == nil {
		t.Error("read() without jwt.secret error = nil, want error")
	}
}
