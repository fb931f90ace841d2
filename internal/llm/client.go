// ABOUTME: LLM client for query embeddings and role-play generation
// ABOUTME: Talks to two OpenAI-compatible endpoints with retry and backoff
package llm

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mwatkins1970/leilan-portal/internal/config"
	"github.com/mwatkins1970/leilan-portal/internal/util"
)

// Client wraps the embeddings and chat endpoints with retry logic. The
// two endpoints are configured independently: embeddings usually come
// from a local OpenAI-compatible server, generation from a hosted one.
type Client struct {
	embeddings     *openai.Client
	chat           *openai.Client
	embeddingModel string
	dimension      int
	maxTokens      int
	temperature    float64
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient builds a client from the loaded configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.EmbeddingsBaseURL == "" {
		return nil, fmt.Errorf("embeddings base URL is required")
	}
	if cfg.ChatBaseURL == "" {
		return nil, fmt.Errorf("chat base URL is required")
	}

	embCfg := openai.DefaultConfig(cfg.EmbeddingsAPIKey)
	embCfg.BaseURL = cfg.EmbeddingsBaseURL
	chatCfg := openai.DefaultConfig(cfg.ChatAPIKey)
	chatCfg.BaseURL = cfg.ChatBaseURL

	return &Client{
		embeddings:     openai.NewClientWithConfig(embCfg),
		chat:           openai.NewClientWithConfig(chatCfg),
		embeddingModel: cfg.EmbeddingModel,
		dimension:      cfg.VectorDimension,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// GenerateEmbedding embeds text and normalizes the result to unit
// length, matching the pre-normalized corpus rows so that dot products
// are cosine similarities.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.embeddings.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(resp.Data) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}
		cancel()

		embedding32 := resp.Data[0].Embedding
		embedding := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding[i] = float64(v)
		}
		// A wrong dimension means a wrong model is serving the
		// endpoint; retrying will not fix it.
		if c.dimension > 0 && len(embedding) != c.dimension {
			return nil, fmt.Errorf("embedding has %d dimensions, expected %d", len(embedding), c.dimension)
		}
		return normalize(embedding)
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Generate sends the assembled prompt as a single user message and
// returns the model's reply text.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.chat.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		})
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		cancel()
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("failed to generate response after %d attempts: %w", c.maxRetries+1, lastErr)
}

// TruncateAtQueryMarker drops everything from the first query marker
// onward. The model occasionally echoes the prompt's trailing QUERY
// line and continues the conversation with itself; the cut keeps only
// the role-play reply.
func TruncateAtQueryMarker(response string) string {
	if idx := strings.Index(response, "\nQUERY:"); idx >= 0 {
		return response[:idx]
	}
	return response
}

// normalize scales v to unit length in place.
func normalize(v []float64) ([]float64, error) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, fmt.Errorf("embedding has zero norm")
	}
	for i := range v {
		v[i] /= norm
	}
	return v, nil
}
