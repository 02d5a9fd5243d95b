package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ReplyClient is an implementation of the ReplyGenerator interface using an
// OpenAI-compatible chat API. With the base URL pointed at DeepSeek this is
// the default persona backend.
type ReplyClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewReplyClient creates a new OpenAI-compatible reply client
func NewReplyClient(
	apiKey string,
	baseURL string,
	modelName string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *ReplyClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &ReplyClient{
		client:      openai.NewClientWithConfig(cfg),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// GenerateReply produces the persona reply for a scam-classified session
func (c *ReplyClient) GenerateReply(ctx context.Context, text string, history []core.Message, session *core.Session) (string, error) {
	prompt := reply.BuildContext(history, session)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: reply.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat API")
	}

	generated := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("Generated persona reply",
		zap.String("model", c.modelName),
		zap.String("completion_id", resp.ID),
		zap.Int("reply_length", len(generated)))

	return generated, nil
}

// GenerateSafeReply produces a neutral reply for unclassified sessions.
// No API call is needed for this.
func (c *ReplyClient) GenerateSafeReply(_ context.Context, _ string) (string, error) {
	return reply.SafeReply, nil
}
