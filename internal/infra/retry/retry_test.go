package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		assert.True(t, IsRetryable(&HTTPError{StatusCode: code}), "code %d", code)
	}
	for _, code := range []int{400, 401, 403, 404, 418} {
		assert.False(t, IsRetryable(&HTTPError{StatusCode: code}), "code %d", code)
	}
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-3"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("garbage"))

	// HTTP dates in the past clamp to zero
	assert.Equal(t, time.Duration(0), ParseRetryAfter("Mon, 02 Jan 2006 15:04:05 GMT"))
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 404}
	})

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 404, he.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 2, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 500}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Options{MaxRetries: 2, BaseDelay: time.Millisecond}, func() error {
		t.Fatal("fn should not run on cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFullJitterSleepBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := FullJitterSleep(3, 100*time.Millisecond, 500*time.Millisecond)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 500*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), FullJitterSleep(0, 0, time.Second))
}
