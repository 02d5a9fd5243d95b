package config

// LLMConfig represents the configuration for the reply provider
type LLMConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for OpenAI-compatible providers
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// EngagementConfig represents the termination policy thresholds
type EngagementConfig struct {
	MaxMessages          int
	CombinedEvidenceMin  int
	CombinedMessageFloor int
	StagnationFloor      int
	DetectionThreshold   float64
}

// GetLLM returns the reply provider configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetOpenAI returns the OpenAI-compatible provider configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetEngagement returns the engagement policy configuration
func (c *Config) GetEngagement() EngagementConfig {
	return EngagementConfig{
		MaxMessages:          c.GetInt("engagement.max_messages"),
		CombinedEvidenceMin:  c.GetInt("engagement.combined_evidence_min"),
		CombinedMessageFloor: c.GetInt("engagement.combined_message_floor"),
		StagnationFloor:      c.GetInt("engagement.stagnation_floor"),
		DetectionThreshold:   c.GetFloat64("engagement.detection_threshold"),
	}
}
