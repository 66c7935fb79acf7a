package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hirewire/jobboard/pkg/jwtx"
)

type Config struct {
	ServerURL string // Public base URL, also the token issuer
	SecretKey string // Required: HMAC signing secret
	Algorithm string // JWT signing algorithm, HS256/HS384/HS512 (default: HS256)

	AccessTokenExpireMinutes  float64 // Access token lifetime (default: 30)
	RefreshTokenExpireMinutes int     // Refresh token lifetime (default: 10080, one week)
	TokenPath                 string  // Login path appended to ServerURL for the audience claim
	MaxRequests               int     // Advertised per-token request budget

	DatabaseFile        string        // Path to SQLite database file (default: ./jobboard.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	SentryDSN           string        // Optional: error reporting
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one exists in the working directory.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		ServerURL: getEnvOrDefault("SERVER_URL", "http://localhost:8080"),
		SecretKey: os.Getenv("SECRET_KEY"),
		Algorithm: getEnvOrDefault("JWT_ALGORITHM", "HS256"),

		AccessTokenExpireMinutes:  getEnvFloatOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenExpireMinutes: getEnvIntOrDefault("REFRESH_TOKEN_EXPIRE_MINUTES", 7*24*60),
		TokenPath:                 getEnvOrDefault("TOKEN_PATH", "/graphql"),
		MaxRequests:               getEnvIntOrDefault("TOKEN_MAX_REQUESTS", 30),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "jobboard.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SentryDSN:           os.Getenv("SENTRY_DSN"),
	}
}

// TokenSettings derives the token codec settings. The audience is the full
// URL tokens are presented to, so mint and verify agree by construction.
func (c Config) TokenSettings() jwtx.Settings {
	return jwtx.Settings{
		SecretKey:                 c.SecretKey,
		Algorithm:                 c.Algorithm,
		AccessTokenExpireMinutes:  c.AccessTokenExpireMinutes,
		RefreshTokenExpireMinutes: c.RefreshTokenExpireMinutes,
		Issuer:                    c.ServerURL,
		Audience:                  c.ServerURL + c.TokenPath,
		TokenPath:                 c.TokenPath,
		MaxRequests:               c.MaxRequests,
	}
}

// Validate rejects configurations the server must not start with.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return c.TokenSettings().Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	// Bare integers are read as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
