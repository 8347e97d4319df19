package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinuteLimit(t *testing.T) {
	rl := NewRateLimiter(2, 0, 0, 0)

	require.NoError(t, rl.Check("client", 0))
	require.NoError(t, rl.Check("client", 0))

	err := rl.Check("client", 0)
	require.Error(t, err)

	var rle *RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "minute", rle.Type)
	assert.Equal(t, 2, rle.Limit)
	assert.Positive(t, rle.RetryAfter)
}

func TestRateLimiterHourLimit(t *testing.T) {
	rl := NewRateLimiter(0, 3, 0, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Check("client", 0))
	}

	err := rl.Check("client", 0)
	require.Error(t, err)

	var rle *RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "hour", rle.Type)
}

func TestRateLimiterDailyRequestQuota(t *testing.T) {
	rl := NewRateLimiter(0, 0, 2, 0)

	require.NoError(t, rl.Check("client", 0))
	require.NoError(t, rl.Check("client", 0))

	err := rl.Check("client", 0)
	require.Error(t, err)

	var qee *QuotaExceededError
	require.True(t, errors.As(err, &qee))
	assert.Equal(t, "requests", qee.Type)
	assert.Equal(t, int64(2), qee.Limit)
	assert.Equal(t, int64(2), qee.Used)
	assert.False(t, qee.Resets.IsZero())
}

func TestRateLimiterDataQuota(t *testing.T) {
	rl := NewRateLimiter(0, 0, 0, 100)

	require.NoError(t, rl.Check("client", 60))

	err := rl.Check("client", 60)
	require.Error(t, err)

	var qee *QuotaExceededError
	require.True(t, errors.As(err, &qee))
	assert.Equal(t, "data", qee.Type)
	assert.Equal(t, int64(60), qee.Used)
}

func TestRateLimiterClientsIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 0, 0, 0)

	require.NoError(t, rl.Check("a", 0))
	require.Error(t, rl.Check("a", 0))
	require.NoError(t, rl.Check("b", 0))
}

func TestRateLimiterZeroLimitsDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 0, 0, 0)

	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Check("client", 1<<20))
	}
}

func TestRateLimitErrorMessages(t *testing.T) {
	rle := &RateLimitError{Type: "minute", Limit: 10}
	assert.Contains(t, rle.Error(), "minute")
	assert.Contains(t, rle.Error(), "10")

	qee := &QuotaExceededError{Type: "data", Limit: 100, Used: 99}
	assert.Contains(t, qee.Error(), "data")
	assert.Contains(t, qee.Error(), "99")
}
