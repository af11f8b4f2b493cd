package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration
	SessionIdleTTL time.Duration

	SquareAccessToken string
	SquareEnv         string
	SquareLocationID  string

	FrontendURL string

	RedisAddr     string
	RedisPassword string

	SendgridAPIKey string
	FromEmail      string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "zeelevate"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		SessionIdleTTL: getDurationEnv("SESSION_IDLE_TTL", 30, time.Minute),

		SquareAccessToken: getEnvOrDefault("SQUARE_ACCESS_TOKEN", ""),
		SquareEnv:         getEnvOrDefault("SQUARE_ENV", "sandbox"),
		SquareLocationID:  getEnvOrDefault("SQUARE_LOCATION_ID", ""),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		SendgridAPIKey: getEnvOrDefault("SENDGRID_API_KEY", ""),
		FromEmail:      getEnvOrDefault("FROM_EMAIL", "no-reply@zeelevate.academy"),
	}
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
