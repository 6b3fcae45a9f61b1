package usl

import (
	"errors"
	"net/http"
	"time"
)

// Option is a functional option for configuring a [Client].
type Option func(*Options)

// Options holds the resolved configuration for a [Client]. All fields are
// set to sensible defaults by [New]; use With* functions to override
// individual values.
type Options struct {
	timeout       time.Duration
	maxAttempts   int
	retryDelay    time.Duration
	retryStatuses []int
	httpClient    *http.Client // Optional: injected HTTP client for testing

	validateRoute        string
	createListItemsRoute string
	itemEventsRoute      string
}

func newOptions() *Options {
	return &Options{
		timeout:       30 * time.Second,
		maxAttempts:   3,
		retryDelay:    5 * time.Second,
		retryStatuses: []int{http.StatusTooManyRequests, http.StatusInternalServerError},

		validateRoute:        "validate",
		createListItemsRoute: "list-items",
		itemEventsRoute:      "item-events",
	}
}

func (o *Options) validate() error {
	if o.timeout <= 0 {
		return errors.New("request timeout must be greater than zero")
	}

	if o.maxAttempts < 1 {
		return errors.New("max attempts must be greater than or equal to 1")
	}

	if o.retryDelay < 0 {
		return errors.New("retry delay cannot be negative")
	}

	if len(o.retryStatuses) == 0 {
		return errors.New("at least one retryable status code is required")
	}

	if o.validateRoute == "" || o.createListItemsRoute == "" || o.itemEventsRoute == "" {
		return errors.New("API routes cannot be empty")
	}

	return nil
}

// WithTimeout sets the per-request timeout. Default: 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithMaxAttempts sets the total number of attempts made for a single
// request, including the first. Default: 3.
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		o.maxAttempts = n
	}
}

// WithRetryDelay sets the fixed delay between attempts when the API responds
// with a retryable status. Default: 5 seconds. A zero delay is valid and
// useful in tests.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) {
		o.retryDelay = d
	}
}

// WithRetryStatuses replaces the set of HTTP status codes that trigger a
// retry. Default: 429 and 500.
func WithRetryStatuses(statuses ...int) Option {
	return func(o *Options) {
		o.retryStatuses = statuses
	}
}

// WithHTTPClient sets a custom HTTP client. The client's own timeout, if
// any, takes precedence over [WithTimeout]. This is useful for injecting
// test transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.httpClient = client
	}
}

// WithRoutes overrides the relative API routes used by the facade methods.
// Empty strings keep the corresponding default.
func WithRoutes(validate, createListItems, itemEvents string) Option {
	return func(o *Options) {
		if validate != "" {
			o.validateRoute = validate
		}

		if createListItems != "" {
			o.createListItemsRoute = createListItems
		}

		if itemEvents != "" {
			o.itemEventsRoute = itemEvents
		}
	}
}
