package skill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/michael-genson/usl-alexa-skill/eventstore"
	"github.com/michael-genson/usl-alexa-skill/router"
	"github.com/michael-genson/usl-alexa-skill/translator"
	"github.com/michael-genson/usl-alexa-skill/types"
)

// Config identifies the external services the skill talks to.
type Config struct {
	// USLBaseURL is the base URL of the Unified Shopping List API.
	USLBaseURL string

	// LinkRoute and UnlinkRoute are the USL account lifecycle routes,
	// relative to USLBaseURL.
	LinkRoute   string
	UnlinkRoute string

	// ClientID and ClientSecret identify this skill to the USL API. They
	// sign the security hash sent with unlink notifications.
	ClientID     string
	ClientSecret string
}

func (c Config) validate() error {
	if c.USLBaseURL == "" {
		return errors.New("USL base URL cannot be empty")
	}

	if c.LinkRoute == "" || c.UnlinkRoute == "" {
		return errors.New("account lifecycle routes cannot be empty")
	}

	return nil
}

// Skill is the top-level Alexa request handler. It dispatches every inbound
// request envelope to the matching handler: voice intents, account
// lifecycle events, household list events and skill messages.
//
// A Skill is long-lived and safe for concurrent use; the List Management
// and USL clients it hands to the translator and router are built per
// invocation because their credentials are invocation-scoped.
type Skill struct {
	cfg    Config
	store  eventstore.Store
	logger types.Logger
	opts   *Options
}

// New creates a Skill. store may be nil when callback persistence is not
// configured.
func New(cfg Config, store eventstore.Store, logger types.Logger, opts ...Option) (*Skill, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid skill config: %w", err)
	}

	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid skill options: %w", err)
	}

	return &Skill{
		cfg:    cfg,
		store:  store,
		logger: logger.WithField("component", "skill"),
		opts:   options,
	}, nil
}

// Handle processes one Alexa request envelope. It never fails the
// invocation: any processing error is answered with a spoken retry prompt,
// matching how a voice user would expect the skill to degrade.
func (s *Skill) Handle(ctx context.Context, envelope RequestEnvelope) (*ResponseEnvelope, error) {
	logger := s.logger.WithFields(map[string]any{
		"request_type": envelope.Request.Type,
		"request_id":   envelope.Request.RequestID,
	})

	logger.Debug("Handling skill request")

	response, err := s.dispatch(ctx, &envelope)
	if err != nil {
		logger.Errorf("Unable to fully process request: %v", err)
		return askAgain(speechNotUnderstood), nil
	}

	return response, nil
}

func (s *Skill) dispatch(ctx context.Context, envelope *RequestEnvelope) (*ResponseEnvelope, error) {
	switch envelope.Request.Type {
	case RequestTypeLaunch:
		return s.launch(envelope), nil

	case RequestTypeIntent:
		return s.intent(envelope), nil

	case RequestTypeSessionEnded:
		return emptyResponse(), nil

	case RequestTypeAccountLinked:
		return s.accountLinked(ctx, envelope)

	case RequestTypeSkillDisabled:
		return s.skillDisabled(ctx, envelope)

	case RequestTypeItemsCreated, RequestTypeItemsUpdated, RequestTypeItemsDeleted:
		return s.listEvent(ctx, envelope)

	case RequestTypeMessageReceived:
		return s.message(ctx, envelope)

	default:
		return nil, fmt.Errorf("unsupported request type %q", envelope.Request.Type)
	}
}

// listEvent routes a household list notification through a per-invocation
// translator. A nil translator result means the event was dropped on
// purpose and gets an empty response.
func (s *Skill) listEvent(ctx context.Context, envelope *RequestEnvelope) (*ResponseEnvelope, error) {
	request := envelope.Request
	if request.Body == nil {
		return nil, errors.New("list event request has no body")
	}

	event := types.ListItemEvent{
		RequestID:   request.RequestID,
		Timestamp:   request.Timestamp,
		ListID:      request.Body.ListID,
		ListItemIDs: request.Body.ListItemIDs,
	}

	lists := s.opts.listClientFactory(envelope.Context.System.APIEndpoint, envelope.Context.System.APIAccessToken)

	var uslClient translator.USLAPI

	if token := envelope.accessToken(); token != "" {
		client, err := s.opts.uslClientFactory(s.cfg.USLBaseURL, token)
		if err != nil {
			return nil, fmt.Errorf("failed to build USL client: %w", err)
		}

		uslClient = client
	}

	tr, err := translator.New(lists, uslClient, s.logger, s.opts.translatorOpts...)
	if err != nil {
		return nil, err
	}

	var response *types.MessageResponse

	switch envelope.Request.Type {
	case RequestTypeItemsCreated:
		response, err = tr.HandleItemsCreated(ctx, event)
	case RequestTypeItemsUpdated:
		response, err = tr.HandleItemsUpdated(ctx, event)
	case RequestTypeItemsDeleted:
		response, err = tr.HandleItemsDeleted(ctx, event)
	}

	if err != nil {
		return nil, err
	}

	if response == nil {
		return emptyResponse(), nil
	}

	return apiResponse(response), nil
}

// message routes an inbound skill message through a per-invocation message
// router and returns the routed envelope as the API response.
func (s *Skill) message(ctx context.Context, envelope *RequestEnvelope) (*ResponseEnvelope, error) {
	if len(envelope.Request.Message) == 0 {
		return emptyResponse(), nil
	}

	var msg types.Message
	if err := json.Unmarshal(envelope.Request.Message, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse skill message: %w", err)
	}

	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid skill message: %w", err)
	}

	lists := s.opts.listClientFactory(envelope.Context.System.APIEndpoint, envelope.Context.System.APIAccessToken)

	rt, err := router.New(lists, s.store, s.logger, s.opts.routerOpts...)
	if err != nil {
		return nil, err
	}

	return apiResponse(rt.Route(ctx, msg)), nil
}

// joinURL joins a base URL and a route without doubling or dropping the
// separating slash.
func joinURL(base, route string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(route, "/")
}
