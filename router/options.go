package router

import (
	"errors"
	"time"
)

// Option is a functional option for configuring a [Router].
type Option func(*Options)

// Options holds the resolved configuration for a [Router].
type Options struct {
	callbackTTL time.Duration
	notifier    Notifier
}

func newOptions() *Options {
	return &Options{
		callbackTTL: 15 * time.Minute,
	}
}

func (o *Options) validate() error {
	if o.callbackTTL <= 0 {
		return errors.New("callback TTL must be greater than zero")
	}

	return nil
}

// WithCallbackTTL sets how long persisted callback responses stay
// retrievable. Default: 15 minutes.
func WithCallbackTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.callbackTTL = ttl
	}
}

// WithNotifier sets an optional [Notifier] that is invoked after a callback
// response has been persisted. Notification failures are logged but never
// fail the invocation.
func WithNotifier(n Notifier) Option {
	return func(o *Options) {
		o.notifier = n
	}
}
