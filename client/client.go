// Package client calls a running code-assist server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bitrise-io/bitrise-code-assistant/assistant"
	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/bitrise-io/bitrise-code-assistant/model"
)

// Error is a non-200 reply from the server
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL, e.g. http://127.0.0.1:5000
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, common.NewStandardClient(common.DefaultRetryConfig()))
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Run posts code to the task's route and returns the value under its output key
func (c *Client) Run(ctx context.Context, task assistant.Task, code string) (string, error) {
	body, err := json.Marshal(model.CodeRequest{Code: code})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+task.Route, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debugf("Posting %d characters of code to %s", len(code), req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", task.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody model.ErrorResponse
		msg := strings.TrimSpace(string(raw))
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return "", &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	var out model.TaskResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	value, ok := out[task.OutputKey]
	if !ok {
		return "", fmt.Errorf("response is missing %q", task.OutputKey)
	}
	return value, nil
}
