package main

import (
	"os"

	"user-portal-backend/config"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *config.Config {

	config := &config.Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		ServerAddress:          getEnv("SERVER_ADDRESS", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:           getEnv("DATABASE_NAME", "UserPortal_Dev"),
		JWTSecret:              getEnv("JWT_SECRET", "your-dev-secret-key"),
		CollectionUserName:     "users",
		CollectionSessionsName: "sessions",
	}

	return config
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
