// config.go
//
// Feedback, rating link and analytics service for multi-tenant business dashboards
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of smart-reviewer.
// smart-reviewer is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// smart-reviewer is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with smart-reviewer.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port            string
	PublicRateLimit int // requests per minute per client on the public endpoints

	// Database configuration
	DBType            string // postgres, mysql, sqlite, sqlserver
	DatabaseURL       string // postgres only, overrides the individual DB_* settings
	DBHost            string
	DBPort            string
	DBDatabase        string // database name, or the file path for sqlite
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBConnectionLimit int
	DBIdleTimeout     time.Duration
	DBConnMaxLifetime time.Duration
	DBConnectTimeout  time.Duration

	// Session and credentials
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
	AdminAPIKey  string
	BcryptCost   int

	// Dashboard aggregation
	DisplayOffsetMinutes int // fixed offset from UTC used to bucket days
	AnalyticsWindowDays  int

	// Logging
	LogLevel  string
	LogFormat string // json or console
	LogSQL    bool
}

// Load loads configuration from environment variables, after merging an optional .env file.
// ENV_FILE names the file; otherwise ./.env is used when present.
func Load() (*Config, error) {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		PublicRateLimit:      getEnvAsInt("PUBLIC_RATE_LIMIT", 60),
		DBType:               strings.ToLower(getEnv("DB_TYPE", "postgres")),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBDatabase:           getEnv("DB_DATABASE", ""),
		DBUser:               getEnv("DB_USER", ""),
		DBPassword:           getEnv("DB_PASSWORD", ""),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		DBConnectionLimit:    getEnvAsInt("DB_CONNECTION_LIMIT", 20),
		DBIdleTimeout:        getEnvAsDuration("DB_IDLE_TIMEOUT", 30*time.Second),
		DBConnMaxLifetime:    getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBConnectTimeout:     getEnvAsDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure:         getEnvAsBool("COOKIE_SECURE", true),
		AdminAPIKey:          getEnv("ADMIN_API_KEY", ""),
		BcryptCost:           getEnvAsInt("BCRYPT_COST", 10),
		DisplayOffsetMinutes: getEnvAsInt("DISPLAY_OFFSET_MINUTES", 330),
		AnalyticsWindowDays:  getEnvAsInt("ANALYTICS_WINDOW_DAYS", 30),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		LogSQL:               getEnvAsBool("LOG_SQL", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges
func (cfg *Config) Validate() error {
	switch cfg.DBType {
	case "postgres", "postgresql", "mysql", "mariadb", "sqlite", "sqlserver", "mssql":
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}
	if cfg.DBDatabase == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is required and must be at least 32 characters")
	}
	if cfg.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.DisplayOffsetMinutes < -14*60 || cfg.DisplayOffsetMinutes > 14*60 {
		return fmt.Errorf("DISPLAY_OFFSET_MINUTES out of range: %d", cfg.DisplayOffsetMinutes)
	}
	if cfg.AnalyticsWindowDays <= 0 {
		return fmt.Errorf("ANALYTICS_WINDOW_DAYS must be positive")
	}
	if cfg.DBConnectionLimit <= 0 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be positive")
	}
	return nil
}

// DisplayLocation is the fixed zone used to turn instants into calendar days
func (cfg *Config) DisplayLocation() *time.Location {
	return FixedLocation(cfg.DisplayOffsetMinutes)
}

// FixedLocation names a fixed offset zone like "UTC+05:30"
func FixedLocation(offsetMinutes int) *time.Location {
	sign := '+'
	abs := offsetMinutes
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, offsetMinutes*60)
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("30s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
