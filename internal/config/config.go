package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/scoring"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for administrative endpoints

	// TrustedProxies lists proxy IPs whose X-Forwarded-For is honored
	TrustedProxies []string

	// Match-bet point values; tournaments have varied these
	PointsExactHit          int
	PointsCorrectDifference int
	PointsDrawTendency      int
	PointsCorrectTendency   int
	PointsMiss              int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "tippspiel"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "tippspiel"),
		APIKey:      getEnv("API_KEY", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	if cfg.PointsExactHit, err = getEnvInt("POINTS_EXACT_HIT", scoring.DefaultPointsExactHit); err != nil {
		return nil, err
	}
	if cfg.PointsCorrectDifference, err = getEnvInt("POINTS_CORRECT_DIFFERENCE", scoring.DefaultPointsCorrectDifference); err != nil {
		return nil, err
	}
	if cfg.PointsDrawTendency, err = getEnvInt("POINTS_DRAW_TENDENCY", scoring.DefaultPointsDrawTendency); err != nil {
		return nil, err
	}
	if cfg.PointsCorrectTendency, err = getEnvInt("POINTS_CORRECT_TENDENCY", scoring.DefaultPointsCorrectTendency); err != nil {
		return nil, err
	}
	if cfg.PointsMiss, err = getEnvInt("POINTS_MISS", scoring.DefaultPointsMiss); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PointsTable builds the single authoritative points table for this process
func (c *Config) PointsTable() scoring.PointsTable {
	return scoring.PointsTable{
		domain.ResultBetTypeExactHit:          c.PointsExactHit,
		domain.ResultBetTypeCorrectDifference: c.PointsCorrectDifference,
		domain.ResultBetTypeDrawTendency:      c.PointsDrawTendency,
		domain.ResultBetTypeCorrectTendency:   c.PointsCorrectTendency,
		domain.ResultBetTypeMiss:              c.PointsMiss,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
