package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func TestAnthropicClient_Invoke(t *testing.T) {
	var gotModel, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("Expected messages endpoint, got %s", r.URL.Path)
		}
		gotAPIKey = r.Header.Get("x-api-key")

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel, _ = body["model"].(string)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test-1",
			"content": [
				{"type": "text", "text": "Team agreed "},
				{"type": "text", "text": "to ship Friday."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(server.URL))

	out, err := client.Invoke(context.Background(), "claude-test-1", "Summarize this")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if out != "Team agreed to ship Friday." {
		t.Errorf("Expected concatenated text blocks, got %q", out)
	}
	if gotModel != "claude-test-1" {
		t.Errorf("Expected agent id to select the model, got %q", gotModel)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("Expected x-api-key header, got %q", gotAPIKey)
	}
}

func TestAnthropicClient_Invoke_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "boom"}}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(server.URL), option.WithMaxRetries(0))

	_, err := client.Invoke(context.Background(), "claude-test-1", "hi")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "anthropic API error") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestAnthropicClient_Invoke_RequiresAgentID(t *testing.T) {
	client := NewAnthropicClient("test-key")
	if _, err := client.Invoke(context.Background(), "", "hi"); err == nil {
		t.Error("Expected error for missing agent identifier")
	}
}
