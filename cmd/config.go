package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries the process configuration, sourced from the
// environment by the app entrypoint.
type Config struct {
	HTTPPort   string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Aramex CarrierConfig
	SMSA   CarrierConfig
}

// CarrierConfig is one carrier's binding configuration: credentials,
// the enabled flag, the margin rule, and the per-call timeout.
type CarrierConfig struct {
	Enabled bool
	Timeout time.Duration

	// MarginMode selects the rule: "percent" applies MarginRate,
	// anything else applies MarginAmount as a flat addition.
	MarginMode   string
	MarginRate   float64
	MarginAmount float64

	// Credentials holds the carrier-specific secret material, keyed by
	// the field names the carrier client expects.
	Credentials map[string]string
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment. Malformed
// numeric values fall back to their zero defaults.
func LoadConfig() Config {
	return Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		Aramex: CarrierConfig{
			Enabled:      envBool("ARAMEX_ENABLED"),
			Timeout:      envDuration("ARAMEX_TIMEOUT"),
			MarginMode:   envOr("ARAMEX_MARGIN_MODE", "percent"),
			MarginRate:   envFloat("ARAMEX_MARGIN_RATE"),
			MarginAmount: envFloat("ARAMEX_MARGIN_AMOUNT"),
			Credentials: map[string]string{
				"accountNumber":      os.Getenv("ARAMEX_ACCOUNT_NUMBER"),
				"accountPin":         os.Getenv("ARAMEX_ACCOUNT_PIN"),
				"accountEntity":      os.Getenv("ARAMEX_ACCOUNT_ENTITY"),
				"accountCountryCode": os.Getenv("ARAMEX_ACCOUNT_COUNTRY_CODE"),
				"username":           os.Getenv("ARAMEX_USERNAME"),
				"password":           os.Getenv("ARAMEX_PASSWORD"),
				"baseURL":            os.Getenv("ARAMEX_BASE_URL"),
			},
		},
		SMSA: CarrierConfig{
			Enabled:      envBool("SMSA_ENABLED"),
			Timeout:      envDuration("SMSA_TIMEOUT"),
			MarginMode:   envOr("SMSA_MARGIN_MODE", "percent"),
			MarginRate:   envFloat("SMSA_MARGIN_RATE"),
			MarginAmount: envFloat("SMSA_MARGIN_AMOUNT"),
			Credentials: map[string]string{
				"passKey": os.Getenv("SMSA_PASS_KEY"),
				"baseURL": os.Getenv("SMSA_BASE_URL"),
			},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func envDuration(key string) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}
