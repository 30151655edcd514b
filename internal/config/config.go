package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"recap/internal/channel"
)

// Supported agent backends.
const (
	ProviderPlatform  = "platform"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ValidProviders lists all supported agent backends.
var ValidProviders = []string{ProviderPlatform, ProviderAnthropic, ProviderGemini}

// Config holds all recap configuration.
type Config struct {
	// Agent backend and workflow routes
	Agent AgentConfig `yaml:"agent"`

	// Channel catalog. Replaces the built-in catalog when present.
	Channels []channel.Channel `yaml:"channels,omitempty"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig configures the agent invocation client.
type AgentConfig struct {
	Provider string       `yaml:"provider"` // platform, anthropic, gemini
	APIKey   string       `yaml:"api_key"`
	BaseURL  string       `yaml:"base_url"`
	Timeout  string       `yaml:"timeout"`
	Routes   RoutesConfig `yaml:"routes"`
}

// RoutesConfig names the agent identifier each workflow invokes. For
// the anthropic and gemini backends the identifier selects the model.
type RoutesConfig struct {
	Summarize  string `yaml:"summarize"`
	Distribute string `yaml:"distribute"`
	Sentiment  string `yaml:"sentiment"`
}

// UIConfig configures the studio surface.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, dark, light
}

// LoggingConfig configures the category file logger. Parsed again by
// internal/logging with a local struct to avoid an import cycle; keep
// the yaml tags in sync.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration. The sentiment route
// is intentionally blank: that workflow refuses to run until the user
// names an agent for it.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Provider: "",
			BaseURL:  "https://api.recap.dev",
			Timeout:  "120s",
			Routes: RoutesConfig{
				Summarize:  "chat-summarizer",
				Distribute: "chat-distributor",
				Sentiment:  "",
			},
		},

		Channels: channel.DefaultCatalog(),

		UI: UIConfig{
			Theme: "auto",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// envKeys maps each provider to the environment variable carrying its
// API key.
var envKeys = map[string]string{
	ProviderPlatform:  "RECAP_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// When the config names a provider, only its own key applies.
	// Otherwise the first key found selects the backend, platform
	// first.
	if c.Agent.Provider != "" {
		if env, ok := envKeys[c.Agent.Provider]; ok {
			if key := os.Getenv(env); key != "" {
				c.Agent.APIKey = key
			}
		}
	} else {
		for _, p := range ValidProviders {
			if key := os.Getenv(envKeys[p]); key != "" {
				c.Agent.Provider = p
				c.Agent.APIKey = key
				break
			}
		}
	}

	if url := os.Getenv("RECAP_BASE_URL"); url != "" {
		c.Agent.BaseURL = url
	}
	if id := os.Getenv("RECAP_AGENT_SUMMARIZE"); id != "" {
		c.Agent.Routes.Summarize = id
	}
	if id := os.Getenv("RECAP_AGENT_DISTRIBUTE"); id != "" {
		c.Agent.Routes.Distribute = id
	}
	if id := os.Getenv("RECAP_AGENT_SENTIMENT"); id != "" {
		c.Agent.Routes.Sentiment = id
	}
	if t := os.Getenv("RECAP_TIMEOUT"); t != "" {
		c.Agent.Timeout = t
	}
	if os.Getenv("RECAP_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// GetAgentTimeout returns the per-invocation timeout as a duration.
func (c *Config) GetAgentTimeout() time.Duration {
	d, err := time.ParseDuration(c.Agent.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Agent.APIKey == "" {
		return fmt.Errorf("agent API key not configured (set RECAP_API_KEY, ANTHROPIC_API_KEY, or GEMINI_API_KEY)")
	}

	validProvider := false
	for _, p := range ValidProviders {
		if c.Agent.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid agent provider: %s (valid: %v)", c.Agent.Provider, ValidProviders)
	}

	return nil
}

// Route returns the agent identifier configured for a workflow kind.
func (c *Config) Route(kind string) string {
	switch kind {
	case "summarize":
		return c.Agent.Routes.Summarize
	case "distribute":
		return c.Agent.Routes.Distribute
	case "sentiment":
		return c.Agent.Routes.Sentiment
	}
	return ""
}

// DefaultPath returns the config path to use: the working directory's
// .recap/config.yaml when present, else the one under $HOME.
func DefaultPath() string {
	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, ".recap", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".recap", "config.yaml")
	}
	return filepath.Join(home, ".recap", "config.yaml")
}

// Workspace returns the directory whose .recap subdirectory holds the
// given config path. Logging writes its files under the same root.
func Workspace(configPath string) string {
	return filepath.Dir(filepath.Dir(configPath))
}
