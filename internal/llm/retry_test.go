package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry(t *testing.T) {
	cases := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{MockJSON(`{"ok":true}`)}, false, 1},
		{"transient then success", []MockResponse{down(), MockJSON(`{"ok":true}`)}, false, 2},
		{"rate limited then success", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			MockJSON(`{"ok":true}`),
		}, false, 2},
		{"exhausted", []MockResponse{down(), down(), down(), MockJSON(`{}`)}, true, 3},
		{"max tokens is final", []MockResponse{
			{Err: &ErrMaxTokensExceeded{}},
			MockJSON(`{}`),
		}, true, 1},
		{"invalid response retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			MockJSON(`{}`),
		}, true, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.responses...)
			resp, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Len(t, mock.Calls(), tc.wantCalls)
		})
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(down(), down(), down())
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(mock, cfg, nil).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, mock.Calls(), 1)
}

func TestRetryBackoffHonoursRetryAfter(t *testing.T) {
	r := &retryProvider{cfg: fastRetry()}
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second})
	assert.Equal(t, 7*time.Second, wait)

	// Jitter keeps the exponential wait within ±20% of the cap.
	wait = r.backoff(10, errors.New("x"))
	assert.InDelta(t, float64(5*time.Millisecond), float64(wait), float64(time.Millisecond))
}

func TestRetryZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithRetry(mock, RetryConfig{}, nil).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Len(t, mock.Calls(), 1)
	assert.Equal(t, ProviderMock, WithRetry(mock, RetryConfig{}, nil).ModelID())
}
