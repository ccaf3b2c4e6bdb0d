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

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// ProviderConfig selects and configures the upstream shot provider
type ProviderConfig struct {
	Key         string // "nbastats" or "apisports"
	Timeout     time.Duration
	Retries     int
	SeasonType  string
	NBAStatsURL string

	APISportsURL  string
	APISportsHost string
	RapidAPIKey   string

	// Synthetic allows generated coordinates for providers that only report
	// per-game totals
	Synthetic bool
	Seed      int64
}

// RedisConfig holds the comparison event stream configuration. An empty URL
// disables publishing.
type RedisConfig struct {
	URL    string
	Stream string
}

// AuditConfig holds the comparison audit log configuration. An empty DSN
// disables the audit log.
type AuditConfig struct {
	DSN string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Provider      ProviderConfig
	Redis         RedisConfig
	Audit         AuditConfig
	Log           LogConfig
	DefaultSeason string
}

// LoadDotEnv loads variables from the given .env files without overriding the
// environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("parsing HTTP_TIMEOUT: %w", err)
	}
	retries, err := strconv.Atoi(getEnv("HTTP_RETRIES", "0"))
	if err != nil {
		return nil, fmt.Errorf("parsing HTTP_RETRIES: %w", err)
	}
	synthetic, err := strconv.ParseBool(getEnv("SYNTHETIC_SHOTS", "false"))
	if err != nil {
		return nil, fmt.Errorf("parsing SYNTHETIC_SHOTS: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("SYNTHETIC_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing SYNTHETIC_SEED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Provider: ProviderConfig{
			Key:           getEnv("SHOT_PROVIDER", "nbastats"),
			Timeout:       timeout,
			Retries:       retries,
			SeasonType:    getEnv("SEASON_TYPE", "Regular Season"),
			NBAStatsURL:   getEnv("NBA_STATS_BASE_URL", "https://stats.nba.com/stats"),
			APISportsURL:  getEnv("APISPORTS_BASE_URL", "https://api-nba-v1.p.rapidapi.com"),
			APISportsHost: getEnv("APISPORTS_HOST", "api-nba-v1.p.rapidapi.com"),
			RapidAPIKey:   os.Getenv("RAPIDAPI_KEY"),
			Synthetic:     synthetic,
			Seed:          seed,
		},
		Redis: RedisConfig{
			URL:    os.Getenv("REDIS_URL"),
			Stream: getEnv("COMPARISON_STREAM", "shotcharts.comparisons"),
		},
		Audit: AuditConfig{
			DSN: os.Getenv("AUDIT_DSN"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		DefaultSeason: getEnv("DEFAULT_SEASON", "2023-24"),
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
