package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestDoSucceedsOnThirdAttempt(t *testing.T) {
	var failures []int
	calls := 0

	err := Do(context.Background(), Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		OnFailure:  func(attempt int, _ error) { failures = append(failures, attempt) },
	}, func(context.Context) error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, failures)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 3, BaseDelay: time.Millisecond}

	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 4, calls)
	assert.Equal(t, 4, p.Attempts())
}

func TestDoStopsOnPermanentError(t *testing.T) {
	calls := 0

	err := Do(context.Background(), Policy{MaxRetries: 3, BaseDelay: time.Millisecond},
		func(context.Context) error {
			calls++
			return Permanent(errBoom)
		})

	assert.Equal(t, 1, calls)
	assert.Same(t, errBoom, err)
	assert.False(t, IsPermanent(err))
}

func TestDoWaitsWithExponentialBackoff(t *testing.T) {
	var stamps []time.Time
	base := 20 * time.Millisecond

	_ = Do(context.Background(), Policy{MaxRetries: 2, BaseDelay: base}, func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errBoom
	})

	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), base)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 2*base)
}

func TestDoCapsBackoffAtMaxDelay(t *testing.T) {
	var stamps []time.Time
	base := 10 * time.Millisecond

	start := time.Now()
	_ = Do(context.Background(), Policy{MaxRetries: 4, BaseDelay: base, MaxDelay: base}, func(context.Context) error {
		stamps = append(stamps, time.Now())
		return errBoom
	})

	require.Len(t, stamps, 5)
	// Uncapped, the four waits would add up to 15 * base.
	assert.Less(t, time.Since(start), 12*base)
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Do(ctx, Policy{MaxRetries: 10, BaseDelay: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errBoom
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestZeroRetriesMeansOneAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, func(context.Context) error {
		calls++
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
