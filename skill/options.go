package skill

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/michael-genson/usl-alexa-skill/listmanagement"
	"github.com/michael-genson/usl-alexa-skill/router"
	"github.com/michael-genson/usl-alexa-skill/translator"
	"github.com/michael-genson/usl-alexa-skill/types"
	"github.com/michael-genson/usl-alexa-skill/usl"
)

// USLClient is the USL API surface the skill's event handlers use.
type USLClient interface {
	PostListItemEvent(ctx context.Context, event types.ListEvent) error
	CreateListItems(ctx context.Context, items types.USLListItems) (types.USLListItems, error)
}

// ListClientFactory builds a List Management client scoped to one
// invocation's API endpoint and access token.
type ListClientFactory func(endpoint, token string) router.ListAPI

// USLClientFactory builds a USL API client scoped to one user's linked
// credential.
type USLClientFactory func(baseURL, token string) (USLClient, error)

// Option is a functional option for configuring a [Skill].
type Option func(*Options)

// Options holds the resolved configuration for a [Skill].
type Options struct {
	httpClient        *http.Client
	listClientFactory ListClientFactory
	uslClientFactory  USLClientFactory
	translatorOpts    []translator.Option
	routerOpts        []router.Option
}

func newOptions() *Options {
	return &Options{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		listClientFactory: func(endpoint, token string) router.ListAPI {
			return listmanagement.New(endpoint, token)
		},
		uslClientFactory: func(baseURL, token string) (USLClient, error) {
			return usl.New(baseURL, token)
		},
	}
}

func (o *Options) validate() error {
	if o.httpClient == nil {
		return errors.New("http client cannot be nil")
	}

	if o.listClientFactory == nil {
		return errors.New("list client factory cannot be nil")
	}

	if o.uslClientFactory == nil {
		return errors.New("usl client factory cannot be nil")
	}

	return nil
}

// WithHTTPClient sets the HTTP client used for account lifecycle calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.httpClient = client
	}
}

// WithListClientFactory replaces the default List Management client
// factory, useful for injecting mocks in tests.
func WithListClientFactory(factory ListClientFactory) Option {
	return func(o *Options) {
		o.listClientFactory = factory
	}
}

// WithUSLClientFactory replaces the default USL client factory, useful for
// injecting mocks in tests.
func WithUSLClientFactory(factory USLClientFactory) Option {
	return func(o *Options) {
		o.uslClientFactory = factory
	}
}

// WithTranslatorOptions forwards options to the per-invocation translator.
func WithTranslatorOptions(opts ...translator.Option) Option {
	return func(o *Options) {
		o.translatorOpts = append(o.translatorOpts, opts...)
	}
}

// WithRouterOptions forwards options to the per-invocation message router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(o *Options) {
		o.routerOpts = append(o.routerOpts, opts...)
	}
}
