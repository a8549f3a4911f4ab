package llm

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestNewLLM(t *testing.T) {
	tests := []struct {
		provider string
		name     string
	}{
		{ProviderHFInference, "hf-inference"},
		{ProviderOpenAI, "openai"},
		{ProviderAnthropic, "anthropic"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := NewLLM(tt.provider, "key", WithModel("some/model"))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if client.Name() != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, client.Name())
			}
			if client.Model() != "some/model" {
				t.Errorf("Expected model some/model, got %s", client.Model())
			}
		})
	}
}

func TestNewLLM_Unsupported(t *testing.T) {
	_, err := NewLLM("together", "key")
	if err == nil || !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("Expected unsupported provider error, got %v", err)
	}
}

func TestNewLLM_MissingKey(t *testing.T) {
	for _, provider := range []string{ProviderHFInference, ProviderOpenAI, ProviderAnthropic} {
		if _, err := NewLLM(provider, ""); !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("%s: expected ErrNoAPIKey, got %v", provider, err)
		}
	}
}

func TestApplyOptions(t *testing.T) {
	custom := &http.Client{}
	o := applyOptions(clientOptions{modelName: "default", maxTokens: 100}, []Option{
		WithModel("m"),
		WithMaxTokens(300),
		WithAPITimeout(5 * time.Second),
		WithBaseURL("http://x"),
		WithHTTPClient(custom),
		WithModel(""),
		WithMaxTokens(-1),
		{Type: ModelNameOption, Value: 42},
	})

	if o.modelName != "m" {
		t.Errorf("Expected model m, got %s", o.modelName)
	}
	if o.maxTokens != 300 {
		t.Errorf("Expected max tokens 300, got %d", o.maxTokens)
	}
	if o.apiTimeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", o.apiTimeout)
	}
	if o.baseURL != "http://x" {
		t.Errorf("Expected base url http://x, got %s", o.baseURL)
	}
	if o.httpClient != custom {
		t.Error("Expected the custom HTTP client")
	}
	if o.tokens(0) != 300 || o.tokens(50) != 50 {
		t.Errorf("Expected request tokens to win over the default, got %d and %d", o.tokens(0), o.tokens(50))
	}
}

func TestApplyOptions_DefaultHTTPClient(t *testing.T) {
	o := applyOptions(clientOptions{}, nil)
	if o.httpClient == nil {
		t.Error("Expected a default HTTP client")
	}
}
