package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"

	"github.com/abhisek/familyhub/internal/store"
)

type recordingEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEvents) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestRecord, error) {
	return nil, nil
}

func TestMockProviderReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(MockJSON(`{"a":1}`))
	mock.Enqueue(MockResponse{Err: errors.New("boom")})

	resp, err := mock.Generate(context.Background(), Prompt("sys", "first", nil, 64))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, "end", resp.StopReason)

	_, err = mock.Generate(context.Background(), Request{})
	assert.EqualError(t, err, "boom")

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	calls := mock.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "first"}}, calls[0].Messages)
}

func TestMockProviderValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(`{"name":"x"}`))
	_, err := mock.Generate(context.Background(), Request{Schema: personSchema()})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrNotConfigured)

	cfg.Provider = ProviderMock
	assert.NoError(t, cfg.Validate())

	cfg.Provider = ProviderOpenAI
	assert.ErrorContains(t, cfg.Validate(), "llm.openai.api_key")
	cfg.OpenAI.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "llama"
	assert.ErrorContains(t, cfg.Validate(), "unknown LLM provider")
}

func TestConfigDiscover(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, ok := DefaultConfig().Discover()
	assert.False(t, ok)

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	cfg, ok := DefaultConfig().Discover()
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Empty(t, cfg.OpenRouter.APIKey)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku"))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash"))
	assert.Equal(t, "gpt-4.1-nano", resolveModel("gpt-4.1-nano"))
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)

	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
}

func TestWithLoggingRecordsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	events := &recordingEvents{}
	mock := NewMockProvider(
		MockResponse{Content: []byte(`{}`), Usage: usage(40, 12)},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, "openai", events, zap.New(core))
	ctx := WithPurpose(context.Background(), PurposeHint)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, events.events, 2)
	ok := events.events[0]
	assert.Equal(t, "openai", ok.Provider)
	assert.Equal(t, ProviderMock, ok.Model)
	assert.Equal(t, PurposeHint, ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 40, ok.InputTokens)
	assert.Equal(t, 12, ok.OutputTokens)

	failed := events.events[1]
	assert.False(t, failed.Success)
	assert.Equal(t, PurposeUnknown, failed.Purpose)
	assert.Contains(t, failed.ErrorMessage, "rate limited")

	assert.Equal(t, 1, logs.FilterMessage("LLM request failed").Len())
}

func TestWithLoggingSurvivesStoreFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	events := &recordingEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockJSON(`{}`)), "mock", events, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to store LLM request event").Len())
}

func TestSummarize(t *testing.T) {
	rec := func(model string, in, out int, ok bool) store.LLMRequestRecord {
		return store.LLMRequestRecord{
			LLMRequestEventData: store.LLMRequestEventData{Model: model, InputTokens: in, OutputTokens: out, Success: ok},
			Timestamp:           time.Now(),
		}
	}
	got := Summarize([]store.LLMRequestRecord{
		rec("gpt-4o-mini", 1_000_000, 0, true),
		rec("homebrew", 10, 10, false),
		rec("gpt-4o-mini", 0, 1_000_000, false),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "gpt-4o-mini", got[0].Model)
	assert.Equal(t, 2, got[0].Requests)
	assert.Equal(t, 1, got[0].Failures)
	assert.True(t, got[0].Priced)
	assert.InDelta(t, 0.75, got[0].CostUSD, 1e-9)
	assert.False(t, got[1].Priced)
	assert.Zero(t, got[1].CostUSD)
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(personSchema().Definition)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"name", "age"}, s.Required)
	assert.Equal(t, genai.TypeInteger, s.Properties["age"].Type)
	assert.Equal(t, []string{"A", "B", "C"}, s.Properties["grade"].Enum)
}
