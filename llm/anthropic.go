package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
)

// AnthropicModel implements the LLM interface using Anthropic's Messages API
type AnthropicModel struct {
	client anthropic.Client
	opts   clientOptions
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		logger.Error("Anthropic API key cannot be empty")
		return nil, ErrNoAPIKey
	}

	o := applyOptions(clientOptions{
		modelName: string(anthropic.ModelClaude3_7SonnetLatest),
		maxTokens: 200,
	}, opts)

	// Retries are owned by the shared HTTP client, so the SDK's own are switched off.
	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(o.httpClient),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(o.baseURL))
	}

	logger.Debugf("Anthropic client initialized with model: %s, timeout: %s", o.modelName, o.apiTimeout)

	return &AnthropicModel{
		client: anthropic.NewClient(requestOpts...),
		opts:   o,
	}, nil
}

func (a *AnthropicModel) Name() string  { return ProviderAnthropic }
func (a *AnthropicModel) Model() string { return a.opts.modelName }

// Complete sends the prompt as a single user message
func (a *AnthropicModel) Complete(ctx context.Context, req TextRequest) (string, error) {
	resp, err := a.Chat(ctx, ChatRequest{
		Messages:  []Message{{Role: RoleUser, Content: req.Prompt}},
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	content, _ := resp.FirstContent()
	return content, nil
}

// Chat sends the messages and returns the text blocks of the reply as a single choice
func (a *AnthropicModel) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, cancel := a.opts.withTimeout(ctx)
	defer cancel()

	var system []anthropic.TextBlockParam
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.opts.modelName),
		MaxTokens: int64(a.opts.tokens(req.MaxTokens)),
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}

	logger.Debugf("Sending message to Anthropic with model %s, max tokens %d", a.opts.modelName, params.MaxTokens)

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapAnthropicError(err)
	}

	var content string
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		}
	}

	if content == "" {
		return &ChatResponse{}, nil
	}
	return &ChatResponse{
		Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: content}}},
	}, nil
}

func wrapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider:   ProviderAnthropic,
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Error(),
			Err:        err,
		}
	}
	return fmt.Errorf("failed to create message: %w", err)
}
