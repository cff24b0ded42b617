// ABOUTME: OpenAI client adapter for embeddings and grounded chat completion
// ABOUTME: Batches embedding requests and retries with exponential backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/models"
	"github.com/gugugu/docrag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// CompletionOptions carries the caller-tunable completion parameters
type CompletionOptions struct {
	MaxTokens   int
	Temperature float32
}

// CompletionResult is a full, non-streaming completion
type CompletionResult struct {
	Content string
	Model   string
	Usage   *models.TokenUsage
}

// CompletionStream yields content fragments in arrival order.
// Recv returns io.EOF after the final fragment; any other error means the
// stream failed mid-flight and no further fragments will arrive.
type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	BatchSize      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// ConfigFromApp derives a ClientConfig from the application config
func ConfigFromApp(cfg *config.Config) *ClientConfig {
	return &ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		BatchSize:      cfg.EmbedBatchSize,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	}
}

// Client wraps the OpenAI API with batching and retry behavior
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	batchSize      int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a Client from the given configuration
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientCfg),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		batchSize:      batchSize,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// ChatModel returns the configured chat model name
func (c *Client) ChatModel() string {
	return c.chatModel
}

// EmbedBatch returns one embedding per input text, in input order, all of
// uniform dimension. Requests are issued in batches of the configured size.
// No caching happens here: dedup by content hash is the store's job.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := c.embedOnce(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: inconsistent dimensions %d and %d (vector %d)",
				ErrEmbeddingService, dim, len(v), i)
		}
	}

	return vectors, nil
}

// embedOnce embeds a single batch with retry
func (c *Client) embedOnce(ctx context.Context, texts []string) ([][]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs",
				attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float64, len(resp.Data))
		for i, d := range resp.Data {
			vec := make([]float64, len(d.Embedding))
			for j, v := range d.Embedding {
				vec[j] = float64(v)
			}
			vectors[i] = vec
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrEmbeddingService, c.maxRetries+1, lastErr)
}

// Complete runs a single non-streaming chat completion
func (c *Client) Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCompletionService, err)
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return &CompletionResult{
			Content: resp.Choices[0].Message.Content,
			Model:   resp.Model,
			Usage: &models.TokenUsage{
				PromptTokens:     resp.Usage.PromptTokens,
				CompletionTokens: resp.Usage.CompletionTokens,
				TotalTokens:      resp.Usage.TotalTokens,
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrCompletionService, c.maxRetries+1, lastErr)
}

// CompleteStream opens a streaming chat completion. Opening the stream is
// retried; once fragments are flowing, a failure surfaces through Recv and
// is not retried here.
func (c *Client) CompleteStream(ctx context.Context, prompt string, opts CompletionOptions) (CompletionStream, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCompletionService, err)
			}
		}

		stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   opts.MaxTokens,
			Temperature: opts.Temperature,
			Stream:      true,
		})
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		return &openaiStream{stream: stream}, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrCompletionService, c.maxRetries+1, lastErr)
}

// openaiStream adapts the go-openai stream to CompletionStream
type openaiStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openaiStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCompletionService, err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if content := resp.Choices[0].Delta.Content; content != "" {
			return content, nil
		}
	}
}

func (s *openaiStream) Close() error {
	return s.stream.Close()
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
