package factory

import (
	"fmt"

	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// ReplyFactory creates reply generators
type ReplyFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewReplyFactory creates a new reply factory
func NewReplyFactory(cfg *config.Config, logger *zap.Logger) *ReplyFactory {
	return &ReplyFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplyGenerator creates a reply generator based on the configuration
func (f *ReplyFactory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "openai":
		return NewOpenAIFactory(f.cfg, f.logger).CreateReplyGenerator()
	case "gemini":
		return NewGeminiFactory(f.cfg, f.logger).CreateReplyGenerator()
	case "bedrock":
		return NewBedrockFactory(f.cfg, f.logger).CreateReplyGenerator()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
