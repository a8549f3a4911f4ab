package common

import (
	"net/http"
	"time"

	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryConfig holds the configuration for the gateway HTTP client
type RetryConfig struct {
	// Maximum number of retries, 0 sends every request exactly once
	RetryMax int
	// Minimum time to wait between retries
	RetryWaitMin time.Duration
	// Maximum time to wait between retries
	RetryWaitMax time.Duration
	// Timeout for a single request including retries, 0 means no timeout
	Timeout time.Duration
	// Function to determine if a request should be retried
	CheckRetry retryablehttp.CheckRetry
}

// DefaultRetryConfig returns a RetryConfig that never retries
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryMax:     0,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 5 * time.Second,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
	}
}

// RetryConfigFromSettings maps the gateway settings onto a RetryConfig
func RetryConfigFromSettings(gw Gateway) RetryConfig {
	config := DefaultRetryConfig()
	config.RetryMax = gw.Retry.Max
	if gw.Retry.WaitMin > 0 {
		config.RetryWaitMin = gw.Retry.WaitMin
	}
	if gw.Retry.WaitMax > 0 {
		config.RetryWaitMax = gw.Retry.WaitMax
	}
	config.Timeout = gw.APITimeout
	return config
}

// NewRetryableClient creates a new HTTP client with retry capabilities.
// When retries are exhausted the last response is handed back unchanged so callers can read the upstream status.
func NewRetryableClient(config RetryConfig) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()

	retryClient.RetryMax = config.RetryMax
	retryClient.RetryWaitMin = config.RetryWaitMin
	retryClient.RetryWaitMax = config.RetryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = config.Timeout

	logger.Debugf("Created retryable client with max retries: %d, min wait: %s, max wait: %s, timeout: %s",
		config.RetryMax, config.RetryWaitMin, config.RetryWaitMax, config.Timeout)

	if config.CheckRetry != nil {
		retryClient.CheckRetry = config.CheckRetry
	}

	retryClient.Logger = &zapRetryLogger{}

	return retryClient
}

// NewStandardClient returns a retrying client behind the plain *http.Client interface the LLM SDKs expect
func NewStandardClient(config RetryConfig) *http.Client {
	return NewRetryableClient(config).StandardClient()
}

// zapRetryLogger adapts our zap logger to the LeveledLogger interface required by retryablehttp
type zapRetryLogger struct{}

func (z *zapRetryLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Errorw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Infow(msg, keysAndValues...)
}

func (z *zapRetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Debugw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Warnw(msg, keysAndValues...)
}
