package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ReplyClient is an implementation of the ReplyGenerator interface using
// Google Gemini
type ReplyClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewReplyClient creates a new Gemini reply client
func NewReplyClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) (*ReplyClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(reply.SystemPrompt)},
	}

	return &ReplyClient{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client
func (c *ReplyClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// GenerateReply produces the persona reply for a scam-classified session
func (c *ReplyClient) GenerateReply(ctx context.Context, text string, history []core.Message, session *core.Session) (string, error) {
	prompt := reply.BuildContext(history, session)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	generated := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	c.logger.Debug("Generated persona reply",
		zap.String("model", c.modelName),
		zap.Int("reply_length", len(generated)))

	return generated, nil
}

// GenerateSafeReply produces a neutral reply for unclassified sessions
func (c *ReplyClient) GenerateSafeReply(_ context.Context, _ string) (string, error) {
	return reply.SafeReply, nil
}
