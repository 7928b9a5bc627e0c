package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBConn       string
	LogLevel     string
	KeyRateURL   string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	ReminderCron string
	ReminderDays int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=installments sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		KeyRateURL:   getEnv("KEY_RATE_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@wisespend.app"),
		ReminderCron: getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderDays: 3,
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.KeyRateURL == "" {
		return nil, fmt.Errorf("KEY_RATE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
