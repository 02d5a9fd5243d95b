package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/adapters/report"
	"github.com/JerrySundi/honeypot/internal/config"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/extract"
	"github.com/JerrySundi/honeypot/internal/factory"
	"github.com/JerrySundi/honeypot/internal/logging"
	"github.com/JerrySundi/honeypot/internal/score"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// LLM provider flags
	Provider    string
	MaxTokens   int
	Temperature float64

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModelName string

	// Detection flags
	DetectionThreshold float64

	// Input flags
	SessionID  string
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
	NoLLM      bool
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// LLM provider flags
	flag.StringVar(&flags.Provider, "provider", "openai", "LLM provider (openai, gemini, bedrock)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 200, "Maximum tokens for reply generation")
	flag.Float64Var(&flags.Temperature, "temperature", 0.8, "Temperature for reply generation")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for the OpenAI-compatible provider")
	flag.StringVar(&flags.OpenAIBaseURL, "openai-base-url", "https://api.deepseek.com", "Base URL for the OpenAI-compatible provider")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "deepseek-chat", "Model name for the OpenAI-compatible provider")

	// Detection flags
	flag.Float64Var(&flags.DetectionThreshold, "threshold", 0.4, "Threshold for scam classification")

	// Input flags
	flag.StringVar(&flags.SessionID, "session", "cli-session", "Session identifier for the transcript")
	flag.StringVar(&flags.InputFile, "file", "", "Transcript file, one scammer message per line (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Print session state after each turn")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")
	flag.BoolVar(&flags.NoLLM, "no-llm", false, "Use rule-based replies instead of an LLM provider")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register reply factory
	if err := container.Provide(factory.NewReplyFactory); err != nil {
		return nil, err
	}

	// Register reply generator
	if err := container.Provide(func(flags *CLIFlags, f *factory.ReplyFactory, logger *zap.Logger) (core.ReplyGenerator, error) {
		if flags.NoLLM {
			return reply.NewFallback(logger), nil
		}
		return f.CreateReplyGenerator()
	}); err != nil {
		return nil, err
	}

	// Register extractor and scorer
	if err := container.Provide(func() core.Extractor {
		return extract.New()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(flags *CLIFlags) core.Scorer {
		return score.NewDetector(flags.DetectionThreshold)
	}); err != nil {
		return nil, err
	}

	// Register engagement service with an in-memory store and a reporter
	// that only logs payloads
	if err := container.Provide(func(
		extractor core.Extractor,
		scorer core.Scorer,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.EngagementService, error) {
		storeFactory := factory.NewStoreFactory(cfg, logger)
		sessionStore, err := storeFactory.CreateSessionStore()
		if err != nil {
			return nil, err
		}

		timeout, err := cfg.GetDuration("report.timeout")
		if err != nil {
			return nil, err
		}
		reporter := report.NewWebhookReporter(cfg.GetString("report.callback_url"), timeout, logger)

		return core.NewEngagementService(
			sessionStore,
			extractor,
			scorer,
			reporter,
			core.DefaultEngagementPolicy(),
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.gateway_type", "cli")
	v.Set("cli.verbose", flags.Verbose)
	v.Set("store.type", "memory")

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.base_url", flags.OpenAIBaseURL)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
	}

	// Set detection threshold
	v.Set("engagement.detection_threshold", flags.DetectionThreshold)

	return config.NewFromViper(v)
}
