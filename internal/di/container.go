package di

import (
	"go.uber.org/dig"

	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/extract"
	"github.com/JerrySundi/honeypot/internal/factory"
	"github.com/JerrySundi/honeypot/internal/logging"
	"github.com/JerrySundi/honeypot/internal/ports"
	"github.com/JerrySundi/honeypot/internal/score"
	"github.com/JerrySundi/honeypot/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewReplyFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReporterFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewGatewayFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register reply generator
	if err := container.Provide(func(f *factory.ReplyFactory) (core.ReplyGenerator, error) {
		return f.CreateReplyGenerator()
	}); err != nil {
		return nil, err
	}

	// Register session store
	if err := container.Provide(func(f *factory.StoreFactory) (core.SessionStore, error) {
		return f.CreateSessionStore()
	}); err != nil {
		return nil, err
	}

	// Register reporter
	if err := container.Provide(func(f *factory.ReporterFactory) (core.Reporter, error) {
		return f.CreateReporter()
	}); err != nil {
		return nil, err
	}

	// Register extractor and scorer
	if err := container.Provide(func() core.Extractor {
		return extract.New()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config) core.Scorer {
		return score.NewDetector(cfg.GetFloat64("engagement.detection_threshold"))
	}); err != nil {
		return nil, err
	}

	// Register engagement policy
	if err := container.Provide(func(cfg *config.Config) core.EngagementPolicy {
		engagementCfg := cfg.GetEngagement()
		policy := core.DefaultEngagementPolicy()
		if engagementCfg.MaxMessages > 0 {
			policy.MaxMessages = engagementCfg.MaxMessages
		}
		if engagementCfg.CombinedEvidenceMin > 0 {
			policy.CombinedEvidenceMin = engagementCfg.CombinedEvidenceMin
		}
		if engagementCfg.CombinedMessageFloor > 0 {
			policy.CombinedMessageFloor = engagementCfg.CombinedMessageFloor
		}
		if engagementCfg.StagnationFloor > 0 {
			policy.StagnationFloor = engagementCfg.StagnationFloor
		}
		return policy
	}); err != nil {
		return nil, err
	}

	// Register engagement service
	if err := container.Provide(core.NewEngagementService); err != nil {
		return nil, err
	}

	// Register message gateway
	if err := container.Provide(func(f *factory.GatewayFactory) (ports.MessageGateway, error) {
		return f.CreateMessageGateway()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
