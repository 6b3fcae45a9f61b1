package eventstore

import (
	"errors"
	"time"
)

// Option is a functional option for configuring a [DynamoDB] store.
type Option func(*Options)

// Options holds the configuration for a [DynamoDB] store. Use [Option]
// functions (such as [WithTTLAttribute]) to customise the defaults.
type Options struct {
	ttlAttribute string
	dynamoDBAPI  API
	clock        func() time.Time
}

func newOptions() *Options {
	return &Options{
		ttlAttribute: DefaultTTLAttr,
		clock:        time.Now,
	}
}

func (o *Options) validate() error {
	if o.ttlAttribute == "" {
		return errors.New("TTL attribute name cannot be empty")
	}

	if o.clock == nil {
		return errors.New("clock cannot be nil")
	}

	return nil
}

// WithTTLAttribute sets the attribute name used for DynamoDB TTL-based
// expiration. The table must have TTL enabled on this attribute. Default:
// [DefaultTTLAttr].
func WithTTLAttribute(name string) Option {
	return func(o *Options) {
		o.ttlAttribute = name
	}
}

// WithAPI sets a custom [API] implementation. This is useful when a custom
// DynamoDB configuration is required, or for injecting mocks in tests.
func WithAPI(api API) Option {
	return func(o *Options) {
		o.dynamoDBAPI = api
	}
}

// WithClock sets a custom clock function used when computing expiration
// timestamps. Defaults to [time.Now]. This is useful for controlling time
// in tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.clock = clock
	}
}
