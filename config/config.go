package config

import (
	"os"
	"strconv"

	"shuttle-tracker/logger"

	"github.com/joho/godotenv"
)

// DefaultUTCOffsetHours matches the deployment the tracker was built for
// (UTC+7 wall clock).
const DefaultUTCOffsetHours = 7

// Config holds all environment-driven application settings. Database
// settings are read separately by the database package.
type Config struct {
	AppHost     string
	AppPort     string
	FrontendURL string

	// UTCOffsetHours shifts every timestamp and date bucket in the system.
	UTCOffsetHours int

	// JobTriggerToken gates the manual job-trigger endpoints. There is no
	// default; when unset the endpoints are disabled.
	JobTriggerToken string

	// Backup integrations. Each is optional and a no-op when unset.
	BackupDir   string
	BackupEmail string
	SMTPHost    string
	SMTPPort    string
	SMTPFrom    string
}

// Load reads the configuration from the environment, loading a .env file
// first when one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded, using environment variables only")
	}

	cfg := Config{
		AppHost:         os.Getenv("APP_HOST"),
		AppPort:         getEnv("APP_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "*"),
		UTCOffsetHours:  DefaultUTCOffsetHours,
		JobTriggerToken: os.Getenv("JOB_TRIGGER_TOKEN"),
		BackupDir:       os.Getenv("BACKUP_DIR"),
		BackupEmail:     os.Getenv("BACKUP_EMAIL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "25"),
		SMTPFrom:        getEnv("SMTP_FROM", "shuttle-tracker@localhost"),
	}

	if raw := os.Getenv("APP_UTC_OFFSET_HOURS"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warning("Invalid APP_UTC_OFFSET_HOURS value, using default: " + raw)
		} else {
			cfg.UTCOffsetHours = offset
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
