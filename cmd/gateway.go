package cmd

import (
	"fmt"

	"github.com/bitrise-io/bitrise-code-assistant/assistant"
	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/llm"
)

// newService builds the gateway client described by settings and wraps it in an assistant.Service
func newService(settings common.Settings) (*assistant.Service, error) {
	gw := settings.Gateway

	httpClient := common.NewStandardClient(common.RetryConfigFromSettings(gw))

	opts := []llm.Option{
		llm.WithModel(gw.Model),
		llm.WithAPITimeout(gw.APITimeout),
		llm.WithHTTPClient(httpClient),
	}
	if gw.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(gw.BaseURL))
	}

	llmClient, err := llm.NewLLM(gw.Provider, gw.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create LLM client: %w", err)
	}

	return assistant.NewService(llm.WithTracing(llmClient)), nil
}
