package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	Host         string
	GeminiAPIKey string
	GeminiModel  string
	AuthKey      string
	DatabaseURL  string
}

func Load() *Config {
	log.Println("[CONFIG] Attempting to load .env file...")

	err := godotenv.Load()
	if err != nil {
		log.Println("[CONFIG] ℹ️ No .env file found, relying on system environment variables")
	} else {
		log.Println("[CONFIG] ✅ Successfully loaded .env file")
	}

	cfg := &Config{
		Port:         getEnv("PORT", "3002"),
		Env:          getEnv("APP_ENV", "development"),
		Host:         getEnv("HOST", "localhost"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AuthKey:      getEnv("AUTH_KEY", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
	}

	log.Printf("[CONFIG] Environment: %s", cfg.Env)
	log.Printf("[CONFIG] Target Port: %s", cfg.Port)

	if cfg.GeminiAPIKey == "" {
		log.Println("[CONFIG] ⚠️ GEMINI_API_KEY is not configured. AI functionality will be limited.")
	} else {
		log.Printf("[CONFIG] Gemini API key detected: %s", maskKey(cfg.GeminiAPIKey))
	}

	if cfg.AuthKey == "" {
		log.Println("[CONFIG] ⚠️ AUTH_KEY (JWT Secret) is missing. Token issuance will be disabled.")
	} else {
		log.Println("[CONFIG] ✅ AUTH_KEY loaded successfully")
	}

	if cfg.DatabaseURL == "" {
		log.Println("[CONFIG] ⚠️ DATABASE_URL is missing. Message archiving will be disabled.")
	} else {
		log.Printf("[CONFIG] Database URL detected: %s", maskDBSource(cfg.DatabaseURL))
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Printf("[CONFIG] ⚠️  Variable %s not found, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func maskKey(key string) string {
	if len(key) < 14 {
		return "****"
	}
	return key[:8] + "..." + key[len(key)-5:]
}

func maskDBSource(dsn string) string {
	parts := strings.Split(dsn, "@")
	if len(parts) < 2 {
		return "invalid-dsn-format"
	}
	return "postgres://****:****@" + parts[1]
}
