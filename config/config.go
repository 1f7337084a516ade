package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mancarijo/pkg/storage"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	LogLevel    string
	// Remote REST API
	APIBaseURL string
	APITimeout time.Duration
	// Transition journal; empty keeps it in memory
	DBUrl string
	// Durable session tier and rate limiting; empty falls back to memory
	RedisURL      string
	RedisPassword string
	// Session cookie
	SessionCookieName string
	CookieSecure      bool
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitLoginThreshold int
	// Profile pictures
	S3                         storage.S3Config
	ProfilePictureMaxDimension int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production sets the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		// Strip the trailing slash to avoid double slashes in request paths
		APIBaseURL:                 strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
		APITimeout:                 getEnvDuration("API_TIMEOUT", 10*time.Second),
		DBUrl:                      getEnv("DATABASE_URL", ""),
		RedisURL:                   getEnv("REDIS_URL", ""),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		SessionCookieName:          getEnv("SESSION_COOKIE_NAME", "mancarijo_session"),
		CookieSecure:               getEnvBool("COOKIE_SECURE", true),
		RateLimitWindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:    getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		ProfilePictureMaxDimension: getEnvInt("PROFILE_PICTURE_MAX_DIMENSION", 512),
		S3: storage.S3Config{
			Provider:        storage.Provider(getEnv("S3_PROVIDER", string(storage.ProviderAWS))),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("S3_REGION", "ap-southeast-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		},
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. The transition journal will be kept in memory.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Remembered sessions and rate limiting will use memory.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("15s") or plain seconds ("15").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
