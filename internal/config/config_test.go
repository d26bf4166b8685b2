package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "LOG_LEVEL", "SMTP_HOST", "SMTP_PORT", "SMTP_EMAIL", "SMTP_PASS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBPath != "./data/spendwise.db" {
		t.Errorf("DBPath = %q, want ./data/spendwise.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.EmailEnabled() {
		t.Error("EmailEnabled should be false without SMTP settings")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_EMAIL", "alerts@example.com")

	cfg := Load()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d", cfg.SMTPPort)
	}
	if !cfg.EmailEnabled() {
		t.Error("EmailEnabled should be true with host and email set")
	}
}

func TestLoadBadPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want fallback 587", cfg.SMTPPort)
	}
}
