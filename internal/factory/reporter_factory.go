package factory

import (
	"fmt"

	"github.com/JerrySundi/honeypot/internal/adapters/report"
	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// ReporterFactory creates reporters based on configuration
type ReporterFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewReporterFactory creates a new reporter factory
func NewReporterFactory(cfg *config.Config, logger *zap.Logger) *ReporterFactory {
	return &ReporterFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReporter creates a reporter based on the configuration
func (f *ReporterFactory) CreateReporter() (core.Reporter, error) {
	timeout, err := f.cfg.GetDuration("report.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid report timeout: %w", err)
	}

	return report.NewWebhookReporter(
		f.cfg.GetString("report.callback_url"),
		timeout,
		f.logger,
	), nil
}
