package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/store"
)

type purposeKey struct{}

// Purposes recorded with each request event.
const (
	PurposeHint    = "hint"
	PurposeUnknown = "unknown"
)

// WithPurpose labels requests made with ctx for the usage log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

type loggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *zap.Logger
}

// WithLogging records one store event per call and mirrors it to log.
// Failing to store the event never fails the call.
func WithLogging(p Provider, provider string, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &loggingProvider{inner: p, provider: provider, events: events, log: log}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.log.Warn("LLM request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("LLM request", fields...)
	}

	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
			l.log.Warn("failed to store LLM request event", zap.Error(logErr))
		}
	}
	return resp, err
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }
