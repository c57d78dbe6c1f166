package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL        string
	SchedulerTimezone  string
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFromNumber   string
	TelegramToken      string
	BaseAdminChatID    int64
	// NonWorkingDaysFile lists plant closures. Closure days count as non-business days,
	// so setting it changes vacation hours and return dates.
	NonWorkingDaysFile string
	OpsAddr            string
	LogLevel           string
	DryRun             bool
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig loads the configuration once and exits the process when it is invalid.
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "vacation_manager.db"),
		SchedulerTimezone:  getEnv("SCHEDULER_TIMEZONE", "America/Chicago"),
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:   getEnv("TWILIO_FROM_NUMBER", ""),
		TelegramToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		BaseAdminChatID:    getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		NonWorkingDaysFile: getEnv("NON_WORKING_DAYS_FILE", ""),
		OpsAddr:            getEnv("OPS_ADDR", ":9090"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DryRun:             getEnvAsBool("SMS_DRY_RUN", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var invalid []string

	if strings.TrimSpace(c.DatabaseURL) == "" {
		invalid = append(invalid, "DATABASE_URL")
	}
	if _, err := time.LoadLocation(c.SchedulerTimezone); err != nil {
		invalid = append(invalid, "SCHEDULER_TIMEZONE")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		invalid = append(invalid, "LOG_LEVEL")
	}
	if c.TelegramToken != "" && c.BaseAdminChatID == 0 {
		invalid = append(invalid, "BASE_ADMIN_CHAT_ID")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// TwilioConfigured reports whether all Twilio settings are present.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// Location returns the scheduler's wall-clock zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.SchedulerTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
