package factory

import (
	"github.com/JerrySundi/honeypot/internal/adapters/openai"
	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// OpenAIFactory creates OpenAI-compatible reply generators
type OpenAIFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewOpenAIFactory creates a new OpenAI factory
func NewOpenAIFactory(cfg *config.Config, logger *zap.Logger) *OpenAIFactory {
	return &OpenAIFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplyGenerator creates an OpenAI-compatible reply generator
func (f *OpenAIFactory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	openaiCfg := f.cfg.GetOpenAI()

	return openai.NewReplyClient(
		openaiCfg.APIKey,
		openaiCfg.BaseURL,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		f.logger,
	), nil
}
