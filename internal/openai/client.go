// Package openai wraps the OpenAI API for embedding and completion
// calls. The client is constructed once at process start and injected
// into every component that needs it.
package openai

import (
	"context"
	"fmt"
	"time"

	"emailogan/internal/config"

	"github.com/sashabaranov/go-openai"
)

// EmbeddingDimension is the output size of the embedding model.
const EmbeddingDimension = 1536

// Client wraps the OpenAI API client with the models this service uses.
type Client struct {
	api        *openai.Client
	chatModel  string
	embedModel openai.EmbeddingModel
	timeout    time.Duration
}

// NewClient creates an OpenAI client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("no OpenAI provider configured: set OPENAI_API_KEY")
	}

	return &Client{
		api:        openai.NewClient(cfg.OpenAIKey),
		chatModel:  openai.GPT4TurboPreview,
		embedModel: openai.AdaEmbeddingV2,
		timeout:    time.Duration(cfg.OpenAITimeout) * time.Second,
	}, nil
}

// CreateEmbeddings generates one fixed-dimension vector per input text.
// Failures surface as-is; no retry is performed.
func (c *Client) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: c.embedModel,
	})
	if err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = data.Embedding
	}

	return embeddings, nil
}

// CreateChatCompletion makes a single stateless system+user exchange and
// returns the first choice's text.
func (c *Client) CreateChatCompletion(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
