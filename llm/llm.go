package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
)

const (
	ProviderHFInference = "hf-inference"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption  OptionType = "model"
	MaxTokensOption  OptionType = "max_tokens"
	APITimeoutOption OptionType = "api_timeout"
	BaseURLOption    OptionType = "base_url"
	HTTPClientOption OptionType = "http_client"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens sets the token ceiling used when a request does not carry its own
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithAPITimeout bounds every gateway call. Zero disables the bound.
func WithAPITimeout(timeout time.Duration) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithBaseURL overrides the provider endpoint
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithHTTPClient sets the HTTP client used to reach the provider
func WithHTTPClient(client *http.Client) Option {
	return Option{
		Type:  HTTPClientOption,
		Value: client,
	}
}

type clientOptions struct {
	modelName  string
	maxTokens  int
	apiTimeout time.Duration
	baseURL    string
	httpClient *http.Client
}

func applyOptions(defaults clientOptions, opts []Option) clientOptions {
	o := defaults
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				o.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok && maxTokens > 0 {
				o.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(time.Duration); ok {
				o.apiTimeout = timeout
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok && baseURL != "" {
				o.baseURL = baseURL
			}
		case HTTPClientOption:
			if client, ok := opt.Value.(*http.Client); ok && client != nil {
				o.httpClient = client
			}
		}
	}
	if o.httpClient == nil {
		o.httpClient = common.NewStandardClient(common.DefaultRetryConfig())
	}
	return o
}

// withTimeout derives the per-call context. A zero timeout leaves ctx untouched.
func (o clientOptions) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.apiTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.apiTimeout)
}

func (o clientOptions) tokens(requested int) int {
	if requested > 0 {
		return requested
	}
	return o.maxTokens
}

// Message is a single role-tagged chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Choice is one candidate returned by a chat completion
type Choice struct {
	Message Message `json:"message"`
}

// TextRequest is a single-prompt text completion
type TextRequest struct {
	Prompt    string
	MaxTokens int
}

// ChatRequest is a chat completion over an ordered message list
type ChatRequest struct {
	Messages  []Message
	MaxTokens int
}

// ChatResponse carries the choices of a chat completion
type ChatResponse struct {
	Choices []Choice
}

// FirstContent returns the content of the first choice and whether there was one
func (r *ChatResponse) FirstContent() (string, bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}

// LLM is the inference gateway: one remote model reachable through two call shapes
type LLM interface {
	// Complete sends a single prompt and returns the generated text
	Complete(ctx context.Context, req TextRequest) (string, error)
	// Chat sends an ordered message list and returns the completion choices
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// Name returns the provider identifier
	Name() string
	// Model returns the model identifier requests are sent to
	Model() string
}

// NewLLM builds the gateway client for the named provider
func NewLLM(providerName, apiKey string, opts ...Option) (LLM, error) {
	var llmClient LLM
	var err error

	switch providerName {
	case ProviderHFInference:
		llmClient, err = NewHuggingFace(apiKey, providerName, opts...)
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, opts...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, opts...)
	default:
		err = fmt.Errorf("unsupported provider: %s", providerName)
	}

	if err == nil {
		logger.Infof("Using LLM provider %s with model %s", llmClient.Name(), llmClient.Model())
	}

	return llmClient, err
}
