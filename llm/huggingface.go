package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/sashabaranov/go-openai"
)

const defaultHFRouterURL = "https://router.huggingface.co"

// HuggingFaceModel implements the LLM interface against the Hugging Face inference router.
// Text generation uses the native task endpoint, chat uses the OpenAI compatible route of the same model.
type HuggingFaceModel struct {
	opts     clientOptions
	provider string
	apiKey   string
	modelURL string
	chat     *openai.Client
}

type hfTextGenerationParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens,omitempty"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfTextGenerationRequest struct {
	Inputs     string                     `json:"inputs"`
	Parameters hfTextGenerationParameters `json:"parameters"`
}

type hfTextGenerationOutput struct {
	GeneratedText string `json:"generated_text"`
}

type hfErrorBody struct {
	Error string `json:"error"`
}

// NewHuggingFace creates a client for the given router provider (e.g. hf-inference)
func NewHuggingFace(apiKey, provider string, opts ...Option) (*HuggingFaceModel, error) {
	if apiKey == "" {
		logger.Error("Hugging Face API key cannot be empty")
		return nil, ErrNoAPIKey
	}
	if provider == "" {
		provider = ProviderHFInference
	}

	o := applyOptions(clientOptions{
		modelName: common.DefaultModel,
		maxTokens: 200,
		baseURL:   defaultHFRouterURL,
	}, opts)

	modelURL := strings.TrimSuffix(o.baseURL, "/") + "/" + provider + "/models/" + o.modelName

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = modelURL + "/v1"
	config.HTTPClient = o.httpClient

	model := &HuggingFaceModel{
		opts:     o,
		provider: provider,
		apiKey:   apiKey,
		modelURL: modelURL,
		chat:     openai.NewClientWithConfig(config),
	}

	logger.Debugf("Hugging Face client initialized with model: %s, endpoint: %s, timeout: %s",
		o.modelName, modelURL, o.apiTimeout)

	return model, nil
}

func (h *HuggingFaceModel) Name() string  { return h.provider }
func (h *HuggingFaceModel) Model() string { return h.opts.modelName }

// Complete runs the text-generation task and returns the generated continuation only
func (h *HuggingFaceModel) Complete(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := h.opts.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(hfTextGenerationRequest{
		Inputs: req.Prompt,
		Parameters: hfTextGenerationParameters{
			MaxNewTokens: h.opts.tokens(req.MaxTokens),
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	logger.Debugf("Sending text generation request to %s with max new tokens %d", h.modelURL, h.opts.tokens(req.MaxTokens))

	resp, err := h.opts.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("text generation request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read text generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{
			Provider:   h.provider,
			StatusCode: resp.StatusCode,
			Message:    hfErrorMessage(raw),
		}
	}

	return parseTextGeneration(h.provider, raw)
}

// parseTextGeneration accepts both the list form and the single object form of the task output
func parseTextGeneration(provider string, raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var outputs []hfTextGenerationOutput
		if err := json.Unmarshal(trimmed, &outputs); err != nil {
			return "", newParseError(provider, raw, err)
		}
		if len(outputs) == 0 {
			return "", nil
		}
		return outputs[0].GeneratedText, nil
	}

	var output hfTextGenerationOutput
	if err := json.Unmarshal(trimmed, &output); err != nil {
		return "", newParseError(provider, raw, err)
	}
	return output.GeneratedText, nil
}

func hfErrorMessage(raw []byte) string {
	var body hfErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "empty response body"
	}
	return msg
}

// Chat sends the messages to the model's chat completion route
func (h *HuggingFaceModel) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, cancel := h.opts.withTimeout(ctx)
	defer cancel()

	logger.Debugf("Sending chat completion with %d messages to %s", len(req.Messages), h.modelURL)

	return createChatCompletion(ctx, h.chat, h.provider, h.opts.modelName, h.opts.tokens(req.MaxTokens), req.Messages)
}

// createChatCompletion is shared by every OpenAI compatible backend
func createChatCompletion(ctx context.Context, client *openai.Client, provider, model string, maxTokens int, messages []Message) (*ChatResponse, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  chatMessages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, wrapOpenAIError(provider, err)
	}

	out := &ChatResponse{Choices: make([]Choice, 0, len(resp.Choices))}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Message: Message{Role: c.Message.Role, Content: c.Message.Content},
		})
	}
	return out, nil
}

// wrapOpenAIError turns go-openai errors into APIError / ParseError so callers can classify them
func wrapOpenAIError(provider string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider:   provider,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := strings.TrimSpace(string(reqErr.Body))
		if msg == "" {
			msg = reqErr.Error()
		}
		return &APIError{
			Provider:   provider,
			StatusCode: reqErr.HTTPStatusCode,
			Message:    hfErrorMessage([]byte(msg)),
			Err:        err,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &ParseError{Provider: provider, Err: err}
	}

	return fmt.Errorf("%s chat completion: %w", provider, err)
}
