package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets
	JWTSecret  string
	IPHashSalt string

	// Admin account seeded at startup
	AdminUsername string
	AdminPassword string

	// Election behavior
	OTPTTL          time.Duration
	ResultsUnlockAt time.Time // zero value means results are never locked
	OpenAtStart     bool

	// OTP delivery (optional; falls back to log delivery)
	SMTPAddr string
	SMTPFrom string
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var otpTTLMinutes int
	var resultsUnlockAt string

	fs := flag.NewFlagSet("ballotbox", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	// Admin account
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Admin username (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-pass", "", "Admin password (prefer env)")

	// Election behavior
	fs.IntVar(&otpTTLMinutes, "otp-ttl", 0, "OTP expiry in minutes")
	fs.StringVar(&resultsUnlockAt, "results-unlock", "", "Results unlock time (RFC3339)")
	fs.BoolVar(&cfg.OpenAtStart, "open-at-start", false, "Open the election on first deployment")

	// OTP delivery
	fs.StringVar(&cfg.SMTPAddr, "smtp-addr", "", "SMTP server address (host:port)")
	fs.StringVar(&cfg.SMTPFrom, "smtp-from", "", "SMTP from address")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	// Admin account - MUST be provided (seeded on first run)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD required")
	}

	// OTP TTL
	if otpTTLMinutes == 0 {
		if ttlStr := os.Getenv("OTP_TTL_MINUTES"); ttlStr != "" {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid OTP_TTL_MINUTES env variable")
			}
			otpTTLMinutes = ttl
		} else {
			otpTTLMinutes = 5 // default
		}
	}
	if otpTTLMinutes < 1 {
		return Config{}, errors.New("OTP TTL must be at least 1 minute")
	}
	cfg.OTPTTL = time.Duration(otpTTLMinutes) * time.Minute

	// Results unlock time
	if resultsUnlockAt == "" {
		resultsUnlockAt = os.Getenv("RESULTS_UNLOCK_AT")
	}
	if resultsUnlockAt != "" {
		unlockAt, err := time.Parse(time.RFC3339, resultsUnlockAt)
		if err != nil {
			return Config{}, fmt.Errorf("invalid results unlock time: %w", err)
		}
		cfg.ResultsUnlockAt = unlockAt
	}

	if !cfg.OpenAtStart && os.Getenv("ELECTION_OPEN_AT_START") == "true" {
		cfg.OpenAtStart = true
	}

	// OTP delivery (optional)
	if cfg.SMTPAddr == "" {
		cfg.SMTPAddr = os.Getenv("SMTP_ADDR")
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	}
	if cfg.SMTPAddr != "" && cfg.SMTPFrom == "" {
		return Config{}, errors.New("SMTP_FROM required when SMTP_ADDR is set")
	}

	return cfg, nil
}
