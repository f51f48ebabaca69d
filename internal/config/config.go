package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini"

	FormatStructured = "structured"
	FormatLegacy     = "legacy"
)

type Config struct {
	Server   ServerConfig
	Remote   RemoteConfig
	Storage  StorageConfig
	Response ResponseConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RemoteConfig struct {
	Provider            string
	APIKey              string
	APIURL              string
	Model               string
	Timeout             time.Duration
	FallbackOnAuthError bool
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type ResponseConfig struct {
	Format string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Remote: RemoteConfig{
			Provider:            getEnv("REMOTE_PROVIDER", ProviderHuggingFace),
			APIKey:              getEnv("REMOTE_API_KEY", ""),
			APIURL:              getEnv("REMOTE_API_URL", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"),
			Model:               getEnv("REMOTE_MODEL", ""),
			Timeout:             getEnvAsDuration("REMOTE_TIMEOUT", "30s"),
			FallbackOnAuthError: getEnvAsBool("FALLBACK_ON_AUTH_ERROR", true),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Response: ResponseConfig{
			Format: getEnv("RESPONSE_FORMAT", FormatStructured),
		},
	}

	if cfg.Remote.APIKey == "" {
		log.Println("⚠️  REMOTE_API_KEY is not set. Remote analysis is disabled; the local analyzer will be used.")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
