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

func testRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 10 * time.Millisecond,
		MaxWait:     40 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// newTestRetry returns a RetryProvider that records waits instead of
// sleeping.
func newTestRetry(inner Provider, cfg RetryConfig) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &RetryProvider{inner: inner, config: cfg}
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("not json")}}
}

func TestRetry_Policy(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantText  string
		wantErr   any
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{TextResponse("Score: 6/10")},
			wantText:  "Score: 6/10",
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			responses: []MockResponse{unavailable(), TextResponse("Score: 6/10")},
			wantText:  "Score: 6/10",
			wantCalls: 2,
		},
		{
			name:      "gives up after max attempts",
			responses: []MockResponse{unavailable(), unavailable(), unavailable(), TextResponse("never")},
			wantErr:   new(*ErrProviderUnavailable),
			wantCalls: 3,
		},
		{
			name:      "auth is not retried",
			responses: []MockResponse{{Err: &ErrAuth{Provider: "groq", Err: errors.New("401")}}, TextResponse("never")},
			wantErr:   new(*ErrAuth),
			wantCalls: 1,
		},
		{
			name:      "max tokens is not retried",
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{}}, TextResponse("never")},
			wantErr:   new(*ErrMaxTokensExceeded),
			wantCalls: 1,
		},
		{
			name:      "invalid response retried once",
			responses: []MockResponse{invalid(), invalid(), TextResponse("never")},
			wantErr:   new(*ErrInvalidResponse),
			wantCalls: 2,
		},
		{
			name:      "invalid once then success",
			responses: []MockResponse{invalid(), TextResponse("Backend Engineer")},
			wantText:  "Backend Engineer",
			wantCalls: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p, _ := newTestRetry(mock, testRetryConfig())

			resp, err := p.Generate(context.Background(), Request{})
			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorAs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Text())
		})
	}
}

func TestRetry_BackoffGrowsAndCaps(t *testing.T) {
	cfg := testRetryConfig()
	cfg.MaxAttempts = 5
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable(), unavailable())
	p, waits := newTestRetry(mock, cfg)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, *waits, 4)

	// 10ms, 20ms, 40ms, 40ms (capped), each within ±20%.
	want := []time.Duration{10, 20, 40, 40}
	for i, w := range *waits {
		base := want[i] * time.Millisecond
		assert.InDelta(t, float64(base), float64(w), float64(base)*0.2+1, "wait %d", i)
	}
}

func TestRetry_RateLimitUsesRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second, Err: errors.New("429")}},
		TextResponse("ok"),
	)
	p, waits := newTestRetry(mock, testRetryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, []time.Duration{3 * time.Second}, *waits)
}

func TestRetry_CancelledDuringWait(t *testing.T) {
	mock := NewMockProvider(unavailable(), TextResponse("never"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, _ := newTestRetry(mock, testRetryConfig())

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ContextErrorFromProviderNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.DeadlineExceeded}, TextResponse("never"))
	p, waits := newTestRetry(mock, testRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, *waits)
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(TextResponse("Backend Engineer"))
	p := WithRetry(mock, RetryConfig{})

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", resp.Text())
	assert.Equal(t, "mock", p.ModelID())
}

func TestSleepCtx(t *testing.T) {
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
