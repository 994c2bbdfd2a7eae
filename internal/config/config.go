package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port        string
	BaseURL     string
	Environment string // "production", "staging" or "development"; selects the origin allowlist
	LogFilePath string
	NatsURL     string
	RedisURL    string
	// RateLimitBackend selects the limiter implementation: "memory" for a
	// single instance, "redis" for a shared counter across instances.
	RateLimitBackend string
	JwtSecret        string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	// BaseURL of the object store that upload triggers reference files in.
	BaseURL  string
	AdminKey string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	IngestTopic  string // Embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string // embedding model
	OllamaChatModel   string
	HuggingFaceURL    string
	HuggingFaceModels []string // ordered fallback list, highest priority first
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:             getEnv("APP_PORT", "3000"),
			BaseURL:          getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:      getEnv("ENVIRONMENT", "development"),
			LogFilePath:      getEnv("LOG_FILE_PATH", "app.log"),
			NatsURL:          getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			RateLimitBackend: getEnv("RATE_LIMIT_BACKEND", "memory"),
			JwtSecret:        getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			BaseURL:  getEnv("STORAGE_BASE_URL", ""),
			AdminKey: getEnv("STORAGE_ADMIN_KEY", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			IngestTopic:  getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaChatModel:   getEnv("OLLAMA_CHAT_MODEL", "llama3"),
			HuggingFaceURL:    getEnv("HUGGINGFACE_BASE_URL", "https://router.huggingface.co/v1"),
			HuggingFaceModels: getEnvAsList("HUGGINGFACE_MODELS", "mistralai/Mistral-7B-Instruct-v0.3,HuggingFaceH4/zephyr-7b-beta"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
