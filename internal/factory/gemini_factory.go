package factory

import (
	"github.com/JerrySundi/honeypot/internal/adapters/gemini"
	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// GeminiFactory creates Gemini reply generators
type GeminiFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewGeminiFactory creates a new Gemini factory
func NewGeminiFactory(cfg *config.Config, logger *zap.Logger) *GeminiFactory {
	return &GeminiFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReplyGenerator creates a Gemini reply generator
func (f *GeminiFactory) CreateReplyGenerator() (core.ReplyGenerator, error) {
	geminiCfg := f.cfg.GetGemini()

	return gemini.NewReplyClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		f.logger,
	)
}
