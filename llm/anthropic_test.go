package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicChat(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected /v1/messages, got %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"x = 1\n"},{"type":"text","text":"y = 2"}],
			"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":2}}`))
	}))
	defer srv.Close()

	model, err := NewAnthropic("key", WithModel("claude-3-5-haiku-latest"), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	resp, err := model.Chat(context.Background(), ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "refactor"},
		},
		MaxTokens: 500,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	content, ok := resp.FirstContent()
	if !ok || content != "x = 1\ny = 2" {
		t.Errorf("Expected joined text blocks, got %q (ok=%v)", content, ok)
	}
	if got["max_tokens"] != float64(500) {
		t.Errorf("Expected max_tokens 500, got %v", got["max_tokens"])
	}
	if msgs, _ := got["messages"].([]interface{}); len(msgs) != 1 {
		t.Errorf("Expected system prompt to be lifted out of messages, got %v", got["messages"])
	}
	if got["system"] == nil {
		t.Error("Expected a system prompt")
	}
}

func TestAnthropicComplete_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	model, err := NewAnthropic("key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = model.Complete(context.Background(), TextRequest{Prompt: "summarize"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if !apiErr.IsAuthError() {
		t.Errorf("Expected auth error, got status %d", apiErr.StatusCode)
	}
}
