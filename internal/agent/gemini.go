package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"recap/internal/logging"
)

// GeminiClient runs instructions against the Gemini API. The agent
// identifier selects the model.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Invoke sends the instruction as a single user turn.
func (c *GeminiClient) Invoke(ctx context.Context, agentID, instruction string) (string, error) {
	if agentID == "" {
		return "", fmt.Errorf("agent identifier required")
	}

	requestID := uuid.NewString()[:8]
	logging.WithRequestID(logging.CategoryAgent, requestID).
		Debug("invoking gemini model %s (%d chars)", agentID, len(instruction))
	logging.Audit().AgentRequest(requestID, agentID, len(instruction))
	start := time.Now()

	contents := []*genai.Content{
		genai.NewContentFromText(instruction, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, agentID, contents, nil)
	if err != nil {
		logging.Audit().AgentFailure(requestID, time.Since(start), err)
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("no response returned")
	}

	logging.Audit().AgentResponse(requestID, time.Since(start), len(out))
	return out, nil
}
