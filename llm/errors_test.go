package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	syntaxErr := &json.SyntaxError{Offset: 1}

	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, ""},
		{"unauthorized", &APIError{Provider: "p", StatusCode: 401}, KindAuth},
		{"forbidden", &APIError{Provider: "p", StatusCode: 403}, KindAuth},
		{"rate limited", &APIError{Provider: "p", StatusCode: 429}, KindRateLimited},
		{"server error", &APIError{Provider: "p", StatusCode: 502}, KindUpstream},
		{"bad request", &APIError{Provider: "p", StatusCode: 422}, KindRejected},
		{"wrapped api error", fmt.Errorf("call: %w", &APIError{Provider: "p", StatusCode: 503}), KindUpstream},
		{"parse error", &ParseError{Provider: "p", Err: errors.New("bad")}, KindMalformed},
		{"json syntax", fmt.Errorf("decode: %w", syntaxErr), KindMalformed},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTimeout},
		{"canceled", context.Canceled, KindCanceled},
		{"net timeout", &net.OpError{Op: "read", Err: timeoutErr{}}, KindTimeout},
		{"other", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Provider: "hf-inference", StatusCode: 401, Message: "Invalid credentials"}
	expected := "hf-inference API error (HTTP 401): Invalid credentials"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	inner := errors.New("connection reset")
	err = &APIError{Provider: "openai", Message: "request failed", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Expected APIError to unwrap to the inner error")
	}
}

func TestNewParseErrorTruncatesInput(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	err := newParseError("p", long, errors.New("bad"))
	if len(err.Input) != 203 {
		t.Errorf("Expected truncated input of 203 chars, got %d", len(err.Input))
	}
}
