// ABOUTME: Tests for OpenAI client construction and configuration mapping
// ABOUTME: Network-free: validates defaults, key requirement, config plumbing
package llm

import (
	"context"
	"testing"
	"time"

	"github.com/gugugu/docrag/internal/config"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&ClientConfig{})
	if err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	c, err := NewClient(&ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("client creation failed: %v", err)
	}

	if c.chatModel != DefaultChatModel {
		t.Errorf("expected default chat model %s, got %s", DefaultChatModel, c.chatModel)
	}
	if c.embeddingModel != DefaultEmbeddingModel {
		t.Errorf("expected default embedding model %s, got %s", DefaultEmbeddingModel, c.embeddingModel)
	}
	if c.batchSize != 16 {
		t.Errorf("expected default batch size 16, got %d", c.batchSize)
	}
	if c.timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", c.timeout)
	}
}

func TestNewClient_HonorsExplicitSettings(t *testing.T) {
	c, err := NewClient(&ClientConfig{
		APIKey:    "test-key",
		ChatModel: "gpt-4o",
		BatchSize: 32,
		Timeout:   10 * time.Second,
	})
	if err != nil {
		t.Fatalf("client creation failed: %v", err)
	}

	if c.ChatModel() != "gpt-4o" {
		t.Errorf("expected chat model gpt-4o, got %s", c.ChatModel())
	}
	if c.batchSize != 32 {
		t.Errorf("expected batch size 32, got %d", c.batchSize)
	}
	if c.timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", c.timeout)
	}
}

func TestConfigFromApp(t *testing.T) {
	appCfg := &config.Config{
		OpenAIKey:      "key",
		OpenAIBaseURL:  "https://proxy.example.com/v1",
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		EmbedBatchSize: 8,
		Timeout:        15 * time.Second,
		MaxRetries:     2,
		RetryDelay:     time.Second,
	}

	got := ConfigFromApp(appCfg)
	if got.APIKey != "key" {
		t.Errorf("expected API key to carry over, got %q", got.APIKey)
	}
	if got.BaseURL != "https://proxy.example.com/v1" {
		t.Errorf("expected base URL to carry over, got %q", got.BaseURL)
	}
	if got.ChatModel != "gpt-4o-mini" {
		t.Errorf("expected chat model to carry over, got %q", got.ChatModel)
	}
	if string(got.EmbeddingModel) != "text-embedding-3-small" {
		t.Errorf("expected embedding model to carry over, got %q", got.EmbeddingModel)
	}
	if got.BatchSize != 8 {
		t.Errorf("expected batch size 8, got %d", got.BatchSize)
	}
	if got.MaxRetries != 2 {
		t.Errorf("expected max retries 2, got %d", got.MaxRetries)
	}
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	c, err := NewClient(&ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("client creation failed: %v", err)
	}

	// Empty input returns without touching the network
	got, err := c.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Errorf("empty batch should not error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil vectors for empty input, got %v", got)
	}
}
