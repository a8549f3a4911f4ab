package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// ErrNoAPIKey indicates the provider credential is missing
var ErrNoAPIKey = errors.New("API key not configured")

// APIError is a non-2xx reply from the provider
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s API error: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsTransient reports whether the same request might succeed later
func (e *APIError) IsTransient() bool {
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// ParseError is a provider reply that could not be decoded
type ParseError struct {
	Provider string
	Input    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s response parse error: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(provider string, input []byte, err error) *ParseError {
	in := string(input)
	if len(in) > 200 {
		in = in[:200] + "..."
	}
	return &ParseError{Provider: provider, Input: in, Err: err}
}

// ErrorKind groups gateway failures by what the caller can do about them
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindCanceled    ErrorKind = "canceled"
	KindAuth        ErrorKind = "auth"
	KindRateLimited ErrorKind = "rate_limited"
	KindRejected    ErrorKind = "rejected"
	KindUpstream    ErrorKind = "upstream"
	KindMalformed   ErrorKind = "malformed"
	KindUnknown     ErrorKind = "unknown"
)

// Classify maps a gateway error onto an ErrorKind. A nil error has no kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		switch {
		case apiErr.IsAuthError():
			return KindAuth
		case apiErr.IsRateLimited():
			return KindRateLimited
		case apiErr.StatusCode >= 500:
			return KindUpstream
		default:
			return KindRejected
		}
	}

	var parseErr *ParseError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &parseErr) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindUnknown
}
