package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearAgentEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RECAP_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("RECAP_BASE_URL", "")
	t.Setenv("RECAP_AGENT_SUMMARIZE", "")
	t.Setenv("RECAP_AGENT_DISTRIBUTE", "")
	t.Setenv("RECAP_AGENT_SENTIMENT", "")
	t.Setenv("RECAP_TIMEOUT", "")
	t.Setenv("RECAP_DEBUG", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Agent.Routes.Summarize != "chat-summarizer" {
		t.Errorf("expected summarize route=chat-summarizer, got %s", cfg.Agent.Routes.Summarize)
	}
	if cfg.Agent.Routes.Sentiment != "" {
		t.Errorf("expected blank sentiment route, got %s", cfg.Agent.Routes.Sentiment)
	}
	if len(cfg.Channels) == 0 {
		t.Error("expected default channel catalog")
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected Theme=auto, got %s", cfg.UI.Theme)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearAgentEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Agent.Provider = "anthropic"
	cfg.Agent.APIKey = "sk-test"
	cfg.Agent.Routes.Sentiment = "mood-reader"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Agent.Provider != "anthropic" {
		t.Errorf("expected Provider=anthropic, got %s", loaded.Agent.Provider)
	}
	if loaded.Agent.APIKey != "sk-test" {
		t.Errorf("expected APIKey=sk-test, got %s", loaded.Agent.APIKey)
	}
	if loaded.Agent.Routes.Sentiment != "mood-reader" {
		t.Errorf("expected sentiment route=mood-reader, got %s", loaded.Agent.Routes.Sentiment)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearAgentEnv(t)

	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Agent.Routes.Summarize != "chat-summarizer" {
		t.Errorf("expected default summarize route, got %s", loaded.Agent.Routes.Summarize)
	}
}

func TestLoad_ChannelCatalogOverride(t *testing.T) {
	clearAgentEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := `channels:
  - id: slack
    name: Slack
    enabled: true
  - id: pager
    name: PagerDuty
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Channels) != 2 {
		t.Fatalf("expected catalog replaced with 2 channels, got %d", len(loaded.Channels))
	}
	if loaded.Channels[1].ID != "pager" || loaded.Channels[1].Name != "PagerDuty" {
		t.Errorf("unexpected second channel: %+v", loaded.Channels[1])
	}
	if !loaded.Channels[0].Enabled {
		t.Error("expected slack enabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	clearAgentEnv(t)

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	// Default has no API key
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing API key")
	}

	cfg.Agent.Provider = "platform"
	cfg.Agent.APIKey = "test-key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	cfg.Agent.Provider = "invalid-provider"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetAgentTimeout() == 0 {
		t.Error("GetAgentTimeout should return non-zero duration")
	}

	cfg.Agent.Timeout = "not-a-duration"
	if got := cfg.GetAgentTimeout().Seconds(); got != 120 {
		t.Errorf("expected 120s fallback, got %vs", got)
	}

	cfg.Agent.Routes = RoutesConfig{Summarize: "s", Distribute: "d", Sentiment: "m"}
	for kind, want := range map[string]string{"summarize": "s", "distribute": "d", "sentiment": "m", "unknown": ""} {
		if got := cfg.Route(kind); got != want {
			t.Errorf("Route(%q)=%q, want %q", kind, got, want)
		}
	}
}

func TestWorkspace(t *testing.T) {
	got := Workspace(filepath.Join("/home", "u", ".recap", "config.yaml"))
	want := filepath.Join("/home", "u")
	if got != want {
		t.Errorf("Workspace=%q, want %q", got, want)
	}
}
