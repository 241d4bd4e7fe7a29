// Package retry runs an operation again with exponential backoff until it
// succeeds, fails permanently or runs out of attempts.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy configures Do.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the wait before the first retry; each later wait doubles.
	BaseDelay time.Duration
	// MaxDelay caps a single wait. Zero means no cap.
	MaxDelay time.Duration
	// OnFailure, when set, is called after every failed attempt.
	OnFailure func(attempt int, err error)
}

// Attempts returns the total number of attempts p allows.
func (p Policy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so Do returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Do calls op until it returns nil, returns an error marked with Permanent,
// the attempts are used up or ctx is done. It returns the last error from op
// with any Permanent marker removed.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}

	var b goretry.Backoff = goretry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = goretry.WithCappedDuration(p.MaxDelay, b)
	}
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b = goretry.WithMaxRetries(uint64(retries), b)

	attempt := 0
	err := goretry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.OnFailure != nil {
			p.OnFailure(attempt, err)
		}
		if IsPermanent(err) {
			return err
		}
		return goretry.RetryableError(err)
	})

	if pe, ok := err.(*permanentError); ok {
		return pe.err
	}
	return err
}
