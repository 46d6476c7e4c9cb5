package llm

import (
	"context"
	"fmt"
	"sync/atomic"

	openai "github.com/sashabaranov/go-openai"

	"docsorter/internal/metrics"
)

// OpenAIClient sends chat completions through the OpenAI API or any
// server speaking its protocol.
type OpenAIClient struct {
	client *openai.Client
	model  string
	tokens atomic.Int64
}

// NewOpenAIClient creates a client. An empty baseURL uses the public API.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Chat sends messages and returns the first choice.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	model := params.Model
	if model == "" {
		model = c.model
	}

	msgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		MaxTokens:   params.MaxTokens,
		Temperature: params.temperature(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	c.tokens.Add(int64(resp.Usage.TotalTokens))
	metrics.LLMTokens.Add(float64(resp.Usage.TotalTokens))
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// TokensUsed returns the tokens billed since the client was created.
func (c *OpenAIClient) TokensUsed() int64 {
	return c.tokens.Load()
}
