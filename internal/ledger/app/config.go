package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	SecretKey           string        // Required outside dev: HMAC secret for JWTs and refresh token fingerprints
	Issuer              string        // Optional: issuer claim for tokens (default: ledger)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./ledger.db)
	AccessTokenTTL      time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL     time.Duration // Optional: refresh token lifetime (default: 7 days)
	PasswordCost        int           // Optional: bcrypt cost for new password hashes (default: 10)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	// Rate limit profiles, overridable with RATELIMIT_{STRICT,MODERATE,LENIENT}_*
	AuthRateLimit    httpx.RateLimitConfig
	ExpenseRateLimit httpx.RateLimitConfig
	HealthRateLimit  httpx.RateLimitConfig
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory, when present, fills in variables that are not
// already set.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		SecretKey:           os.Getenv("LEDGER_SECRET_KEY"),
		Issuer:              getEnvOrDefault("LEDGER_ISSUER", "ledger"),
		DatabaseFile:        getEnvOrDefault("LEDGER_DATABASE_FILE", "ledger.db"),
		AccessTokenTTL:      getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:     getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		PasswordCost:        getEnvIntOrDefault("PASSWORD_COST", bcrypt.DefaultCost),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		AuthRateLimit:       httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		ExpenseRateLimit:    httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		HealthRateLimit:     httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
	}
}

// Validate rejects configurations the server cannot run with. An empty
// secret is only tolerated in dev, where New generates one per process.
func (c Config) Validate() error {
	if c.SecretKey == "" && c.Env != "dev" {
		return errors.New("LEDGER_SECRET_KEY is required outside dev")
	}
	if c.SecretKey != "" && len(c.SecretKey) < jwtx.MinSecretSize {
		return fmt.Errorf("LEDGER_SECRET_KEY must be at least %d bytes", jwtx.MinSecretSize)
	}
	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("PASSWORD_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
