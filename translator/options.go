package translator

import (
	"context"
	"errors"
	"time"
)

// Option is a functional option for configuring a [Translator].
type Option func(*Options)

// Options holds the resolved configuration for a [Translator].
type Options struct {
	debounceDelay time.Duration
	sleep         func(ctx context.Context, d time.Duration) error
}

func newOptions() *Options {
	return &Options{
		debounceDelay: 3 * time.Second,
		sleep:         ctxSleep,
	}
}

func (o *Options) validate() error {
	if o.debounceDelay < 0 {
		return errors.New("debounce delay cannot be negative")
	}

	if o.sleep == nil {
		return errors.New("sleep function cannot be nil")
	}

	return nil
}

// WithDebounceDelay sets the fixed wait inserted before reading list state,
// letting a burst of near-simultaneous notifications settle so one read
// covers them all. This is a heuristic, not a correctness guarantee.
// Default: 3 seconds. Zero disables the wait.
func WithDebounceDelay(d time.Duration) Option {
	return func(o *Options) {
		o.debounceDelay = d
	}
}

// WithSleepFunc replaces the function used to wait out the debounce delay.
// This is useful for observing or skipping the wait in tests.
func WithSleepFunc(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Options) {
		o.sleep = sleep
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
