package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s3cret")

	Load()

	if AppEnv.DBName != "zeelevate" {
		t.Errorf("expected default db name, got %q", AppEnv.DBName)
	}
	if AppEnv.SquareEnv != "sandbox" {
		t.Errorf("expected sandbox default, got %q", AppEnv.SquareEnv)
	}
	if AppEnv.SessionIdleTTL != 30*time.Minute {
		t.Errorf("expected 30m idle ttl, got %v", AppEnv.SessionIdleTTL)
	}
	if AppEnv.AccessTokenTTL != 60*time.Minute {
		t.Errorf("expected 60m access ttl, got %v", AppEnv.AccessTokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_NAME", "academy_test")
	t.Setenv("SESSION_IDLE_TTL", "15")
	t.Setenv("SQUARE_ENV", "production")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	Load()

	if AppEnv.DBName != "academy_test" {
		t.Errorf("expected override db name, got %q", AppEnv.DBName)
	}
	if AppEnv.SessionIdleTTL != 15*time.Minute {
		t.Errorf("expected 15m idle ttl, got %v", AppEnv.SessionIdleTTL)
	}
	if AppEnv.SquareEnv != "production" {
		t.Errorf("expected production, got %q", AppEnv.SquareEnv)
	}
	if AppEnv.FrontendURL != "https://app.example.com" {
		t.Errorf("unexpected frontend url %q", AppEnv.FrontendURL)
	}
}

func TestGetDurationEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "not-a-number")

	if got := getDurationEnv("SESSION_IDLE_TTL", 30, time.Minute); got != 30*time.Minute {
		t.Errorf("expected fallback 30m, got %v", got)
	}
}
