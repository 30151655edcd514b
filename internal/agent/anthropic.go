package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"recap/internal/logging"
)

const anthropicMaxTokens = 4096

// AnthropicClient runs instructions directly against the Anthropic API.
// The agent identifier selects the model.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates an Anthropic-backed client. Extra request
// options let tests point it at a local server.
func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicClient{client: &client}
}

// Invoke sends the instruction as the sole user message.
func (c *AnthropicClient) Invoke(ctx context.Context, agentID, instruction string) (string, error) {
	if agentID == "" {
		return "", fmt.Errorf("agent identifier required")
	}

	requestID := uuid.NewString()[:8]
	logging.WithRequestID(logging.CategoryAgent, requestID).
		Debug("invoking anthropic model %s (%d chars)", agentID, len(instruction))
	logging.Audit().AgentRequest(requestID, agentID, len(instruction))
	start := time.Now()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(agentID),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(instruction)),
		},
	})
	if err != nil {
		logging.Audit().AgentFailure(requestID, time.Since(start), err)
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response returned")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no response returned")
	}

	logging.Audit().AgentResponse(requestID, time.Since(start), len(out))
	return out, nil
}
