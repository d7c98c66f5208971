package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 4, ShouldRetry: isTransient}, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnFatalError(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 5, ShouldRetry: isTransient}, func(ctx context.Context) error {
		calls++
		return fatal
	})

	assert.Same(t, fatal, err)
	assert.Equal(t, 1, calls)
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, ShouldRetry: isTransient}, func(ctx context.Context) error {
		calls++
		return errTransient
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDoValue_UsesDelaySchedule(t *testing.T) {
	var seen []int
	p := Policy{
		MaxAttempts: 3,
		ShouldRetry: isTransient,
		Delay: func(retry int) time.Duration {
			seen = append(seen, retry)
			return time.Millisecond
		},
	}

	v, err := DoValue(context.Background(), p, func(ctx context.Context) (string, error) {
		if len(seen) < 2 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 3, ShouldRetry: isTransient, Delay: Linear(time.Hour)}

	err := Do(ctx, p, func(ctx context.Context) error {
		calls++
		cancel()
		return errTransient
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestLinear(t *testing.T) {
	d := Linear(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, d(1))
	assert.Equal(t, 750*time.Millisecond, d(3))
}
