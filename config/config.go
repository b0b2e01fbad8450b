package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string

	// AdminKey gates moderation endpoints. JWTSecret signs the short-lived
	// admin tokens minted from it.
	AdminKey  string
	JWTSecret []byte

	// UploadWindow is the maximum clock skew accepted on signed key uploads.
	UploadWindow time.Duration

	RegisterPerHour   int
	MessagesPerMinute int
	KeyOpsPerMinute   int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		AdminKey:  os.Getenv("ADMIN_KEY"),
		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		UploadWindow: time.Duration(getEnvInt("UPLOAD_WINDOW_SECONDS", 300)) * time.Second,

		RegisterPerHour:   getEnvInt("RATE_REGISTER_PER_HOUR", 5),
		MessagesPerMinute: getEnvInt("RATE_MESSAGES_PER_MINUTE", 60),
		KeyOpsPerMinute:   getEnvInt("RATE_KEYS_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
