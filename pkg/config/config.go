package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	FirebaseProject  string
	FirebaseApiKey   string
	StorageBucket    string
	CredentialsFile  string
	Environment      string
	CatalogCacheTTL  time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		FirebaseProject:  getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:   getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Environment:      getEnv("ENVIRONMENT", "development"),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL_SECONDS", 5*time.Minute),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		seconds, err := strconv.ParseInt(value, 10, 64)
		if err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
