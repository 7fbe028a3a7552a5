package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mail      MailConfig
	Sheets    SheetsConfig
	Geocode   GeocodeConfig
	Reminders RemindersConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds settings for the SQLite database.
type DatabaseConfig struct {
	Path string
}

// MailConfig contains SMTP settings for the reminder digest. Mail is
// optional: it stays disabled while Host is empty.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// Enabled reports whether outgoing mail is configured.
func (c MailConfig) Enabled() bool { return c.Host != "" }

// SheetsConfig contains configuration for the Google Sheets ledger
// mirror. Optional: disabled while SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// Enabled reports whether the sheets mirror is configured.
func (c SheetsConfig) Enabled() bool { return c.SpreadsheetID != "" }

// GeocodeConfig holds settings for the address geocoding client.
// Optional: disabled while UserAgent is empty.
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
}

// Enabled reports whether geocoding is configured.
func (c GeocodeConfig) Enabled() bool { return c.UserAgent != "" }

// RemindersConfig holds scheduler-related settings.
type RemindersConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	smtpPort, err := intenvWithDefault("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DATABASE_PATH", "bimanager.db"),
		},
		Mail: MailConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			To:       os.Getenv("MAIL_TO"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			SheetRange:      getenvWithDefault("GOOGLE_SHEET_RANGE", "Kassabok!A:L"),
		},
		Geocode: GeocodeConfig{
			BaseURL:   os.Getenv("GEOCODE_BASE_URL"),
			UserAgent: os.Getenv("GEOCODE_USER_AGENT"),
		},
		Reminders: RemindersConfig{
			CronSchedule: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 7 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The
// optional subsystems (mail, sheets, geocoding) are only validated when
// enabled.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Database.Path == "" {
		return errors.New("DATABASE_PATH must be provided")
	}

	if c.Mail.Enabled() {
		switch {
		case c.Mail.Port == 0:
			return errors.New("SMTP_PORT must be provided")
		case c.Mail.User == "":
			return errors.New("SMTP_USER must be provided")
		case c.Mail.To == "":
			return errors.New("MAIL_TO must be provided")
		}
	}

	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		if c.Sheets.SheetRange == "" {
			return errors.New("GOOGLE_SHEET_RANGE must not be empty")
		}
	}

	if c.Reminders.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intenvWithDefault(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
