package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects the environment the server needs. Everything comes from
// env vars; a .env file is honored when present.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	CORSOrigin  string
	LogLevel    string

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Cron expression for the nightly occupancy report, robfig/cron syntax.
	ReportSchedule string

	BcryptCost int
}

// Load reads the configuration from the environment. DATABASE_URL and
// JWT_SECRET are mandatory; everything else has a default.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3001"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:  getEnv("SENDGRID_FROM_NAME", "ParkingApp"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
		ReportSchedule:    getEnv("REPORT_SCHEDULE", "0 2 * * *"),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
