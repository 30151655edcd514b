package agent

import (
	"context"
	"fmt"

	"recap/internal/config"
)

// New builds the agent client the configuration selects. Provider
// resolution (explicit setting, else first available key) already
// happened at config load.
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.Agent.Provider {
	case config.ProviderPlatform:
		pc := DefaultPlatformConfig(cfg.Agent.APIKey)
		if cfg.Agent.BaseURL != "" {
			pc.BaseURL = cfg.Agent.BaseURL
		}
		pc.Timeout = cfg.GetAgentTimeout()
		return NewPlatformClientWithConfig(pc), nil

	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.Agent.APIKey), nil

	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.Agent.APIKey)

	case "":
		return nil, fmt.Errorf("no agent backend configured (set RECAP_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY)")

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Agent.Provider)
	}
}
