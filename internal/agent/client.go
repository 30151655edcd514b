// Package agent provides clients for the external services that run
// recap's AI work. A client sends one natural-language instruction to a
// named agent and hands back the raw reply text; everything the agent
// does behind that call (models, tools, retries) is opaque to recap.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"recap/internal/logging"
)

// Client is the seam between the workflows and the outside world.
type Client interface {
	// Invoke sends an instruction to the agent named by agentID and
	// returns its raw reply text.
	Invoke(ctx context.Context, agentID, instruction string) (string, error)
}

// PlatformClient talks to the recap agent platform.
type PlatformClient struct {
	apiKey     string
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// PlatformConfig holds configuration for the platform client.
type PlatformConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultPlatformConfig returns sensible defaults.
func DefaultPlatformConfig(apiKey string) PlatformConfig {
	return PlatformConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.recap.dev",
		Timeout: 120 * time.Second,
	}
}

// NewPlatformClient creates a platform client with default config.
func NewPlatformClient(apiKey string) *PlatformClient {
	return NewPlatformClientWithConfig(DefaultPlatformConfig(apiKey))
}

// NewPlatformClientWithConfig creates a platform client with custom
// config. Each client carries one session id for its process lifetime
// so the platform can correlate the conversation.
func NewPlatformClientWithConfig(config PlatformConfig) *PlatformClient {
	return &PlatformClient{
		apiKey:    config.APIKey,
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		sessionID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// invokeRequest represents the platform API request structure.
type invokeRequest struct {
	AgentID   string `json:"agent_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// invokeResponse represents the platform API response structure.
type invokeResponse struct {
	Response string `json:"response"`
	Error    *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Invoke sends an instruction to the named agent and returns its reply.
func (c *PlatformClient) Invoke(ctx context.Context, agentID, instruction string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}
	if agentID == "" {
		return "", fmt.Errorf("agent identifier required")
	}

	requestID := uuid.NewString()[:8]
	log := logging.WithRequestID(logging.CategoryAgent, requestID)
	log.Debug("invoking %s (%d chars)", agentID, len(instruction))
	logging.Audit().AgentRequest(requestID, agentID, len(instruction))
	start := time.Now()

	reqBody := invokeRequest{
		AgentID:   agentID,
		Message:   instruction,
		SessionID: c.sessionID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/agents/invoke", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Audit().AgentFailure(requestID, time.Since(start), err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		err := fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		logging.Audit().AgentFailure(requestID, time.Since(start), err)
		return "", err
	}

	var ir invokeResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if ir.Error != nil {
		return "", fmt.Errorf("agent error: %s", ir.Error.Message)
	}

	if ir.Response == "" {
		return "", fmt.Errorf("no response returned")
	}

	logging.Audit().AgentResponse(requestID, time.Since(start), len(ir.Response))
	log.Debug("reply received (%d chars in %v)", len(ir.Response), time.Since(start))

	return strings.TrimSpace(ir.Response), nil
}

// SessionID returns the id the client tags its invocations with.
func (c *PlatformClient) SessionID() string {
	return c.sessionID
}
