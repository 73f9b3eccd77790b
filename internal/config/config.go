package config

import "os"

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	FCMServiceAccount string
	WeeklyCronSpec    string
}

func Load() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "footprint.db"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:              getEnv("PORT", "3000"),
		FCMServiceAccount: getEnv("FCM_SERVICE_ACCOUNT", ""),
		WeeklyCronSpec:    getEnv("WEEKLY_CRON", "0 9 * * 0"), // Sundays 9 AM
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
