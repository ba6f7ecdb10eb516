// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv() {
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("IP_HASH_SALT", "test-salt")
	os.Setenv("ADMIN_USERNAME", "admin")
	os.Setenv("ADMIN_PASSWORD", "password")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv()
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Errorf("expected default OTP TTL 5m, got %v", cfg.OTPTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv()
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing database url", "DATABASE_URL"},
		{"missing jwt secret", "JWT_SECRET"},
		{"missing ip salt", "IP_HASH_SALT"},
		{"missing admin username", "ADMIN_USERNAME"},
		{"missing admin password", "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setRequiredEnv()
			os.Unsetenv(tt.omit)
			defer os.Clearenv()

			if _, err := ParseFlags([]string{}); err == nil {
				t.Errorf("expected error when %s is missing", tt.omit)
			}
		})
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	setRequiredEnv()
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestParseFlags_ResultsUnlock(t *testing.T) {
	setRequiredEnv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-results-unlock", "2025-12-01T17:00:00Z"})
	if err != nil {
		t.Fatal(err)
	}

	want := time.Date(2025, 12, 1, 17, 0, 0, 0, time.UTC)
	if !cfg.ResultsUnlockAt.Equal(want) {
		t.Errorf("expected unlock at %v, got %v", want, cfg.ResultsUnlockAt)
	}

	// Unset means never locked
	cfg, err = ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ResultsUnlockAt.IsZero() {
		t.Errorf("expected zero unlock time, got %v", cfg.ResultsUnlockAt)
	}

	// Invalid format is an error
	if _, err := ParseFlags([]string{"-results-unlock", "tomorrow"}); err == nil {
		t.Error("expected error for invalid unlock time")
	}
}

func TestParseFlags_SMTPRequiresFrom(t *testing.T) {
	setRequiredEnv()
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-smtp-addr", "mail.example.com:587"}); err == nil {
		t.Error("expected error when SMTP_FROM is missing")
	}

	cfg, err := ParseFlags([]string{"-smtp-addr", "mail.example.com:587", "-smtp-from", "votes@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SMTPAddr != "mail.example.com:587" {
		t.Errorf("unexpected SMTP addr: %s", cfg.SMTPAddr)
	}
}
