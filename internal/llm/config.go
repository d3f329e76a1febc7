// Package llm provides centralized LLM configuration and client abstractions
// for the counselling analysis oracle.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: the college analysis report
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning tasks
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
