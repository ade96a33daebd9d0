package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPromptTemplate is the prompt sent to the generative model, with two
// named slots: {context} and {question}. The refusal sentence is a
// prompt-level contract: when the context does not contain the answer, the
// model is instructed to emit it instead of guessing.
const DefaultPromptTemplate = `You are a helpful QA assistant. Your task is to answer the question based ONLY on the provided context.
If the answer to the question is not contained within the context, you must say: "I apologize, the information is not available in the provided context."

**Context:**
{context}

**Question:**
{question}

**Answer:**`

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	DBPath             string
	ChunkSize          int
	ChunkOverlap       int
	CandidateK         int
	ContextSize        int
	RerankEnabled      bool
	PromptTemplate     string
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically; environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a project-root .env (where go.mod lives).
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "gemini-1.5-flash"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "nomic-embed-text"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "documents"),
		DBPath:             getEnv("DB_PATH", "./data/docqa.db"),
		PromptTemplate:     getEnv("PROMPT_TEMPLATE", DefaultPromptTemplate),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// The generative model credential is the only hard-required setting.
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	// QDRANT_VECTOR_SIZE must match the output dimension of the embedding
	// model. If it changes, the Qdrant collection must be recreated.
	cfg.QdrantVectorSize, err = getEnvInt("QDRANT_VECTOR_SIZE", 768)
	if err != nil {
		return nil, err
	}
	if cfg.QdrantVectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 512)
	if err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 50)
	if err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}

	// CandidateK is deliberately larger than ContextSize so the re-ranker has
	// a candidate pool to permute before the context window is filled.
	cfg.CandidateK, err = getEnvInt("CANDIDATE_K", 5)
	if err != nil {
		return nil, err
	}
	cfg.ContextSize, err = getEnvInt("CONTEXT_SIZE", 3)
	if err != nil {
		return nil, err
	}
	if cfg.CandidateK <= 0 {
		return nil, fmt.Errorf("CANDIDATE_K must be greater than 0")
	}
	if cfg.ContextSize <= 0 || cfg.ContextSize > cfg.CandidateK {
		return nil, fmt.Errorf("CONTEXT_SIZE must be in [1, CANDIDATE_K]")
	}

	cfg.RerankEnabled = getEnvBool("RERANK_ENABLED", true)

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\"")
	}

	if strings.TrimSpace(cfg.PromptTemplate) == "" {
		return nil, fmt.Errorf("PROMPT_TEMPLATE must not be blank")
	}

	// Create the data directory for the SQLite registry if it doesn't exist.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// getEnvBool parses a boolean environment variable or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown LOG_LEVEL: %q", s)
	}
}
