package gemini

import "github.com/cardforge/cardforge-api/internal/config"

// validLLMConfig returns a minimal LLM configuration for constructor tests.
func validLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:      "test-api-key",
		ModelName:         "gemini-2.0-flash",
		Temperature:       0.3,
		MaxRetries:        3,
		RetryDelaySeconds: 2,
	}
}
