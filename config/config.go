// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration of the service
type Config struct {
	ListenAddr string

	// Session token signing
	SecretKey  string
	Algorithm  string
	SessionTTL time.Duration

	// Challenge issuance
	ChallengeTTL time.Duration
	Domain       string
	Statement    string
	URI          string
	ChainID      int64

	// Optional shared challenge store / event transport
	RedisURL string
}

// Load reads configuration from the environment, falling back to defaults.
// A missing signing secret is an error: the service must not serve traffic
// with an unsigned or guessable session key.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":9000"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		Algorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),
		ChallengeTTL: getEnvDuration("CHALLENGE_TTL", 5*time.Minute),
		Domain:       getEnv("SIWE_DOMAIN", "propstack.app"),
		Statement:    getEnv("SIWE_STATEMENT", "Sign in to PropStack - Decentralized Real Estate Platform"),
		URI:          getEnv("SIWE_URI", "https://propstack.app"),
		ChainID:      getEnvInt64("CHAIN_ID", 137),
		RedisURL:     os.Getenv("REDIS_URL"),
	}

	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY must be set")
	}
	if cfg.ChallengeTTL <= 0 || cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("TTLs must be positive (challenge=%s, session=%s)", cfg.ChallengeTTL, cfg.SessionTTL)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return num
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
