// Package config loads the service configuration from the environment once
// at startup; the resulting struct is treated as immutable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	JWTSecret string

	// Store selection. The mock in-memory store is the default; set
	// MOCK_DB=false and provide MONGO_URI/MONGO_DATABASE for a real backend.
	UseMockStore  bool
	MongoURI      string
	MongoDatabase string

	// Mock store seeding. RandomSeed=0 seeds question generation from the
	// clock; any other value makes question sets reproducible.
	SeedWorkbooks    int
	SeedAppointments int
	RandomSeed       int64

	// Rate limiting on the auth endpoints.
	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins []string

	TextbeltKey  string
	GeminiAPIKey string
}

// Load reads the configuration. JWT_SECRET is required; everything else has a
// development default.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable JWT_SECRET is not set")
	}

	cfg.Port = getEnvString("API_PORT", "8080")
	cfg.UseMockStore = getEnvBool("MOCK_DB", true)
	cfg.MongoURI = os.Getenv("MONGO_URI")
	cfg.MongoDatabase = os.Getenv("MONGO_DATABASE")
	if !cfg.UseMockStore && (cfg.MongoURI == "" || cfg.MongoDatabase == "") {
		return nil, fmt.Errorf("MOCK_DB=false requires MONGO_URI and MONGO_DATABASE")
	}

	cfg.SeedWorkbooks = getEnvInt("SEED_WORKBOOKS", 40)
	cfg.SeedAppointments = getEnvInt("SEED_APPOINTMENTS", 20)
	cfg.RandomSeed = getEnvInt64("SEED_RANDOM", 0)

	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", 5)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)

	cfg.CORSOrigins = strings.Split(getEnvString("CORS_ORIGINS", "http://localhost:3000"), ",")

	cfg.TextbeltKey = os.Getenv("TEXTBELT_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
