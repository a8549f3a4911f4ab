package llm

import (
	"context"

	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIModel implements the LLM interface for OpenAI and any server speaking its API
type OpenAIModel struct {
	client *openai.Client
	opts   clientOptions
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		logger.Error("OpenAI API key cannot be empty")
		return nil, ErrNoAPIKey
	}

	o := applyOptions(clientOptions{
		modelName: "gpt-4.1",
		maxTokens: 200,
	}, opts)

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = o.httpClient
	if o.baseURL != "" {
		config.BaseURL = o.baseURL
	}

	model := &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		opts:   o,
	}

	logger.Debugf("OpenAI client initialized with model: %s, base url: %s, timeout: %s",
		o.modelName, config.BaseURL, o.apiTimeout)

	return model, nil
}

func (o *OpenAIModel) Name() string  { return ProviderOpenAI }
func (o *OpenAIModel) Model() string { return o.opts.modelName }

// Complete uses the legacy completions endpoint, which most OpenAI compatible servers still expose
func (o *OpenAIModel) Complete(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := o.opts.withTimeout(ctx)
	defer cancel()

	logger.Debugf("Sending completion request to OpenAI with model %s, max tokens %d", o.opts.modelName, o.opts.tokens(req.MaxTokens))

	resp, err := o.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:     o.opts.modelName,
		Prompt:    req.Prompt,
		MaxTokens: o.opts.tokens(req.MaxTokens),
	})
	if err != nil {
		return "", wrapOpenAIError(ProviderOpenAI, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Text, nil
}

// Chat sends the messages to the chat completions endpoint
func (o *OpenAIModel) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, cancel := o.opts.withTimeout(ctx)
	defer cancel()

	logger.Debugf("Sending chat completion to OpenAI with model %s, max tokens %d", o.opts.modelName, o.opts.tokens(req.MaxTokens))

	return createChatCompletion(ctx, o.client, ProviderOpenAI, o.opts.modelName, o.opts.tokens(req.MaxTokens), req.Messages)
}
