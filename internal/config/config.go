package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string
	JWTExpiry  time.Duration

	// OrderTimezone is the IANA zone used to stamp order creation dates.
	OrderTimezone string
	OrderLocation *time.Location
}

// LoadConfig reads the environment (optionally from a .env file) and
// fails fast on anything the process cannot run without.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnvDefault("DB_PORT", "5432"),
		AppPort:       getEnvDefault("APP_PORT", "8080"),
		AppEnv:        getEnvDefault("APP_ENV", "development"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OrderTimezone: getEnvDefault("ORDER_TIMEZONE", "America/Argentina/Buenos_Aires"),
	}

	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("config: DB_HOST, DB_USER and DB_NAME must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}

	expiry := getEnvDefault("JWT_EXPIRY", "24h")
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return nil, fmt.Errorf("config: invalid JWT_EXPIRY %q: %w", expiry, err)
	}
	cfg.JWTExpiry = d

	loc, err := time.LoadLocation(cfg.OrderTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid ORDER_TIMEZONE %q: %w", cfg.OrderTimezone, err)
	}
	cfg.OrderLocation = loc

	return cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
