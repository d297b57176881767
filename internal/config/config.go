package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
	Port      string
}

// Load reads the process environment (after a best-effort .env load) and
// builds the configuration used for the lifetime of the process. Missing
// required keys are fatal: the server must not start without a store URI
// or a token signing secret.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return Config{
		MongoURI:  requireEnv("MONGO_URI"),
		DBName:    getEnvOrDefault("DB_NAME", "accountsdb"),
		JWTSecret: requireEnv("JWT_SECRET"),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 60, time.Minute),
		Port:      getEnvOrDefault("PORT", "5000"),
	}
}

func requireEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
