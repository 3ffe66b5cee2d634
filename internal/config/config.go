package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// MongoDB
	MongoURI    string
	MongoDBName string

	// SMTP (reporter notifications)
	SMTPHost    string
	SMTPPort    int
	EmailSender string
	EmailPass   string

	// Location API
	LocationAPIBaseURL string
	LocationAPIKey     string
	LocationCacheTTL   time.Duration

	// Attachments
	ImageDir string

	// Server
	Port            string
	CORSOrigins     string
	FrontendBaseURL string
}

func Load() *Config {
	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "lost_n_found"),

		SMTPHost:    getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:    parseInt(getEnv("SMTP_PORT", "587"), 587),
		EmailSender: getEnv("EMAIL_SENDER", ""),
		EmailPass:   getEnv("EMAIL_PASSWORD", ""),

		LocationAPIBaseURL: getEnv("LOCATION_API_BASE_URL", ""),
		LocationAPIKey:     getEnv("LOCATION_API_KEY", ""),
		LocationCacheTTL:   parseDuration(getEnv("LOCATION_CACHE_TTL", "6h")),

		ImageDir: getEnv("IMAGE_DIR", "images"),

		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
	}
}

// ManagementLink builds the secret link mailed to a reporter.
func (c *Config) ManagementLink(id, token string) string {
	return c.FrontendBaseURL + "/manage/" + id + "?token=" + token
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}
