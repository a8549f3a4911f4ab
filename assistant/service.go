// Package assistant runs the code tasks: prompt, one gateway call, post-processing.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitrise-io/bitrise-code-assistant/llm"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bitrise-io/bitrise-code-assistant/assistant"

// NoCodeMessage is the client-facing text for ErrNoCode
const NoCodeMessage = "No code provided"

// ErrNoCode is returned before any gateway call when the snippet is empty
var ErrNoCode = errors.New("no code provided")

// EmptyResultError means the gateway answered but produced nothing usable
type EmptyResultError struct {
	Task    string
	Message string
}

func (e *EmptyResultError) Error() string {
	return e.Message
}

// GatewayError wraps any failure of the gateway call itself.
// Error returns the underlying error text unchanged.
type GatewayError struct {
	Task string
	Kind llm.ErrorKind
	Err  error
}

func (e *GatewayError) Error() string {
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Service runs tasks against a single gateway
type Service struct {
	gateway llm.LLM
}

func NewService(gateway llm.LLM) *Service {
	return &Service{gateway: gateway}
}

func (s *Service) Gateway() llm.LLM {
	return s.gateway
}

// Run executes task for code and returns the post-processed output
func (s *Service) Run(ctx context.Context, task Task, code string) (string, error) {
	if code == "" {
		return "", ErrNoCode
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "assistant."+task.Name,
		trace.WithAttributes(
			attribute.String("assistant.task", task.Name),
			attribute.String("assistant.shape", string(task.Shape)),
			attribute.Int("assistant.code_length", len(code)),
		),
	)
	defer span.End()

	log := logger.With("task", task.Name, "model", s.gateway.Model())
	log.Debugf("Running task with %d characters of code", len(code))

	raw, ok, err := s.invoke(ctx, task, task.BuildPrompt(code))
	if err != nil {
		kind := llm.Classify(err)
		log.Errorf("Gateway call failed (%s): %v", kind, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String("assistant.outcome", "gateway_error"),
			attribute.String("assistant.error_kind", string(kind)),
		)
		return "", &GatewayError{Task: task.Name, Kind: kind, Err: err}
	}

	if !ok {
		log.Warnf("Gateway returned no usable content")
		span.SetStatus(codes.Error, task.EmptyMessage)
		span.SetAttributes(attribute.String("assistant.outcome", "empty"))
		return "", &EmptyResultError{Task: task.Name, Message: task.EmptyMessage}
	}

	out := task.Clean(raw)
	span.SetAttributes(
		attribute.String("assistant.outcome", "ok"),
		attribute.Int("assistant.output_length", len(out)),
	)
	log.Debugf("Task finished with %d characters of output", len(out))
	return out, nil
}

// invoke performs the single gateway call. ok is false when the reply carries no content:
// an empty string for text tasks, no choices for chat tasks.
func (s *Service) invoke(ctx context.Context, task Task, prompt string) (string, bool, error) {
	switch task.Shape {
	case ShapeText:
		out, err := s.gateway.Complete(ctx, llm.TextRequest{Prompt: prompt, MaxTokens: task.MaxTokens})
		if err != nil {
			return "", false, err
		}
		return out, out != "", nil
	case ShapeChat:
		resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
			MaxTokens: task.MaxTokens,
		})
		if err != nil {
			return "", false, err
		}
		content, ok := resp.FirstContent()
		return content, ok, nil
	default:
		return "", false, fmt.Errorf("unknown task shape: %s", task.Shape)
	}
}
