package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bitrise-io/bitrise-code-assistant/llm"

// tracedLLM wraps every gateway call in a client span
type tracedLLM struct {
	inner LLM
}

// WithTracing decorates inner so each call is recorded on the global tracer provider
func WithTracing(inner LLM) LLM {
	return &tracedLLM{inner: inner}
}

func (t *tracedLLM) Name() string  { return t.inner.Name() }
func (t *tracedLLM) Model() string { return t.inner.Model() }

func (t *tracedLLM) start(ctx context.Context, op string, maxTokens int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "llm."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", t.inner.Name()),
			attribute.String("llm.model", t.inner.Model()),
			attribute.String("llm.shape", op),
			attribute.Int("llm.max_tokens", maxTokens),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("llm.error_kind", string(Classify(err))))
	}
	span.End()
}

func (t *tracedLLM) Complete(ctx context.Context, req TextRequest) (string, error) {
	ctx, span := t.start(ctx, "complete", req.MaxTokens)
	out, err := t.inner.Complete(ctx, req)
	span.SetAttributes(attribute.Int("llm.output_chars", len(out)))
	endSpan(span, err)
	return out, err
}

func (t *tracedLLM) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, span := t.start(ctx, "chat", req.MaxTokens)
	resp, err := t.inner.Chat(ctx, req)
	if resp != nil {
		span.SetAttributes(attribute.Int("llm.choices", len(resp.Choices)))
	}
	endSpan(span, err)
	return resp, err
}
