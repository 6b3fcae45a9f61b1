package listmanagement

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring a [Client].
type Option func(*Options)

// Options holds the resolved configuration for a [Client].
type Options struct {
	timeout    time.Duration
	httpClient *http.Client // Optional: injected HTTP client for testing
}

func newOptions() *Options {
	return &Options{
		timeout: 10 * time.Second,
	}
}

// WithTimeout sets the per-request timeout. Default: 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client, useful for injecting test
// transports. The client's own timeout takes precedence over [WithTimeout].
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.httpClient = client
	}
}
