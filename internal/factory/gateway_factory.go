package factory

import (
	"fmt"

	"github.com/JerrySundi/honeypot/internal/adapters/gateway"
	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/ports"
	"github.com/JerrySundi/honeypot/internal/utils"
	"go.uber.org/zap"
)

// GatewayFactory creates message gateways based on configuration
type GatewayFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	engine        *core.EngagementService
	generator     core.ReplyGenerator
	textProcessor *utils.TextProcessor
}

// NewGatewayFactory creates a new gateway factory
func NewGatewayFactory(
	cfg *config.Config,
	logger *zap.Logger,
	engine *core.EngagementService,
	generator core.ReplyGenerator,
	textProcessor *utils.TextProcessor,
) *GatewayFactory {
	return &GatewayFactory{
		cfg:           cfg,
		logger:        logger,
		engine:        engine,
		generator:     generator,
		textProcessor: textProcessor,
	}
}

// CreateMessageGateway creates a message gateway based on the configuration
func (f *GatewayFactory) CreateMessageGateway() (ports.MessageGateway, error) {
	gatewayType := f.cfg.GetString("server.gateway_type")
	fallback := reply.NewFallback(f.logger)

	switch gatewayType {
	case "http":
		return gateway.NewHTTPGateway(
			f.engine,
			f.generator,
			fallback,
			f.textProcessor,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetString("server.api_key"),
			f.cfg.GetInt("server.max_message_size"),
		), nil
	case "smtp":
		return gateway.NewSMTPGateway(
			f.engine,
			f.generator,
			fallback,
			f.textProcessor,
			f.logger,
			f.cfg.GetString("server.smtp_listen_address"),
			f.cfg.GetInt("server.max_message_size"),
		), nil
	case "cli":
		return gateway.NewCLIGateway(
			f.engine,
			f.generator,
			fallback,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		), nil
	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", gatewayType)
	}
}
