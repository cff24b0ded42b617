// ABOUTME: Centralized configuration for the docrag retrieval service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the retrieval core and its surfaces
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Storage settings
	DocumentDir string
	StorageDir  string

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int

	// Retrieval settings
	EmbedBatchSize      int
	DefaultTopK         int
	DefaultMinScore     float64
	CandidateMultiplier int
	DemoDocument        string

	// HTTP server settings
	ServerAddr string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       os.Getenv("OPENAI_API_BASE"),
		ChatModel:           getEnv("DOCRAG_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("DOCRAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		DocumentDir:         getEnv("DOCRAG_DOCUMENT_DIR", "doc"),
		StorageDir:          getEnv("DOCRAG_STORAGE_DIR", "data/vectors"),
		ChunkSize:           getEnvInt("DOCRAG_CHUNK_SIZE", 1000),
		ChunkOverlap:        getEnvInt("DOCRAG_CHUNK_OVERLAP", 200),
		EmbedBatchSize:      getEnvInt("DOCRAG_EMBED_BATCH_SIZE", 16),
		DefaultTopK:         getEnvInt("DOCRAG_DEFAULT_TOP_K", 5),
		DefaultMinScore:     getEnvFloat("DOCRAG_MIN_SIMILARITY", 0.0),
		CandidateMultiplier: getEnvInt("DOCRAG_CANDIDATE_MULTIPLIER", 3),
		DemoDocument:        getEnv("DOCRAG_DEMO_DOCUMENT", "demo.md"),
		ServerAddr:          getEnv("DOCRAG_SERVER_ADDR", ":8000"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("DOCRAG_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DOCRAG_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("DOCRAG_EMBED_BATCH_SIZE must be positive, got %d", c.EmbedBatchSize)
	}
	if c.DefaultTopK <= 0 {
		return fmt.Errorf("DOCRAG_DEFAULT_TOP_K must be positive, got %d", c.DefaultTopK)
	}
	if c.DefaultMinScore < -1 || c.DefaultMinScore > 1 {
		return fmt.Errorf("DOCRAG_MIN_SIMILARITY must be in [-1, 1], got %f", c.DefaultMinScore)
	}
	if c.CandidateMultiplier < 1 {
		return fmt.Errorf("DOCRAG_CANDIDATE_MULTIPLIER must be >= 1, got %d", c.CandidateMultiplier)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
