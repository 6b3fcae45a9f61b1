package router

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michael-genson/usl-alexa-skill/eventstore"
	"github.com/michael-genson/usl-alexa-skill/types"
)

// Batch-level failure details. These are part of the messaging contract:
// external callers match on them.
const (
	detailInvalidParameters = "invalid operation + object_type parameters"
	detailServiceException  = "Alexa service exception; are the provided object ids accurate?"
)

// ListAPI is the List Management facade surface the router dispatches
// against: one method per (operation, object type) pair.
type ListAPI interface {
	ReadAllLists(ctx context.Context) (*types.AlexaListsMetadata, error)
	ReadList(ctx context.Context, req types.ReadList) (*types.AlexaList, error)
	CreateList(ctx context.Context, req types.CreateList) (*types.AlexaListMetadata, error)
	UpdateList(ctx context.Context, req types.UpdateList) error
	DeleteList(ctx context.Context, req types.DeleteList) error
	ReadListItem(ctx context.Context, req types.ReadListItem) (*types.AlexaListItem, error)
	CreateListItem(ctx context.Context, req types.CreateListItem) (*types.AlexaListItem, error)
	UpdateListItem(ctx context.Context, req types.UpdateListItem) error
	DeleteListItem(ctx context.Context, req types.DeleteListItem) error
}

// Notifier announces that a callback response has been persisted and is
// ready to poll.
type Notifier interface {
	Notify(ctx context.Context, event types.CallbackEvent) error
}

// Router dispatches the CRUD requests carried by an inbound skill message
// against the List Management facade and assembles the uniform response
// envelope. When the message asks for a callback response, the envelope
// body is also persisted to the event store for out-of-band retrieval.
type Router struct {
	lists  ListAPI
	store  eventstore.Store
	logger types.Logger
	opts   *Options
}

// New creates a Router. store may be nil when no callback persistence is
// available; messages requesting a callback response are then answered
// synchronously only.
func New(lists ListAPI, store eventstore.Store, logger types.Logger, opts ...Option) (*Router, error) {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid router options: %w", err)
	}

	return &Router{
		lists:  lists,
		store:  store,
		logger: logger.WithField("component", "router"),
		opts:   options,
	}, nil
}

// Route processes every request entry in msg independently and returns the
// composed response envelope.
//
// Two failure classes behave differently on purpose. Expected host errors
// (returned as [*types.HostError] values) degrade the envelope's success
// flag but leave sibling entries untouched. Any other error aborts the
// whole batch and yields a fixed diagnostic envelope, because a transport
// fault makes the remaining results unknowable anyway.
func (r *Router) Route(ctx context.Context, msg types.Message) types.MessageResponse {
	response := types.MessageResponse{
		SourceMessage: msg,
		Body:          r.process(ctx, msg),
	}

	if msg.SendCallbackResponse {
		r.persist(ctx, msg, response.Body)
	}

	return response
}

func (r *Router) process(ctx context.Context, msg types.Message) types.MessageResponseBody {
	success := true
	processed := false

	var data []map[string]any

	for _, req := range msg.Requests {
		result, handled, err := r.dispatch(ctx, req)
		if !handled {
			r.logger.WithFields(map[string]any{
				"operation":   req.Operation,
				"object_type": req.ObjectType,
			}).Debug("Skipping unrecognized message request")

			continue
		}

		processed = true

		if err != nil {
			hostErr, ok := types.AsHostError(err)
			if !ok {
				r.logger.Errorf("Aborting message %s: %v", msg.EventID, err)

				return types.MessageResponseBody{
					Success: false,
					Detail:  detailServiceException,
				}
			}

			success = false
			result = map[string]any{
				"type":    hostErr.Type,
				"message": hostErr.Message,
			}
		}

		if result != nil {
			// Echo the request's metadata so the caller can correlate
			// responses without a shared index.
			result["metadata"] = req.Metadata
			data = append(data, result)
		}
	}

	if !processed {
		return types.MessageResponseBody{
			Success: false,
			Detail:  detailInvalidParameters,
		}
	}

	return types.MessageResponseBody{
		Success: success,
		Data:    data,
	}
}

// dispatch invokes the facade method matching (operation, object type).
// handled is false for combinations the router does not recognize. The
// result map is nil for update and delete operations, which succeed with no
// body.
func (r *Router) dispatch(ctx context.Context, req types.MessageRequest) (result map[string]any, handled bool, err error) {
	switch req.Operation {
	case types.OperationReadAll:
		if req.ObjectType == types.ObjectTypeList {
			return r.call(func() (any, error) { return r.lists.ReadAllLists(ctx) })
		}

	case types.OperationRead:
		switch req.ObjectType {
		case types.ObjectTypeList:
			var input types.ReadList
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return r.call(func() (any, error) { return r.lists.ReadList(ctx, input) })

		case types.ObjectTypeListItem:
			var input types.ReadListItem
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return r.call(func() (any, error) { return r.lists.ReadListItem(ctx, input) })
		}

	case types.OperationCreate:
		switch req.ObjectType {
		case types.ObjectTypeList:
			var input types.CreateList
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return r.call(func() (any, error) { return r.lists.CreateList(ctx, input) })

		case types.ObjectTypeListItem:
			var input types.CreateListItem
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return r.call(func() (any, error) { return r.lists.CreateListItem(ctx, input) })
		}

	case types.OperationUpdate:
		switch req.ObjectType {
		case types.ObjectTypeList:
			var input types.UpdateList
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return nil, true, r.lists.UpdateList(ctx, input)

		case types.ObjectTypeListItem:
			var input types.UpdateListItem
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return nil, true, r.lists.UpdateListItem(ctx, input)
		}

	case types.OperationDelete:
		switch req.ObjectType {
		case types.ObjectTypeList:
			var input types.DeleteList
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return nil, true, r.lists.DeleteList(ctx, input)

		case types.ObjectTypeListItem:
			var input types.DeleteListItem
			if err := parseObjectData(req.ObjectData, &input); err != nil {
				return nil, true, err
			}

			return nil, true, r.lists.DeleteListItem(ctx, input)
		}
	}

	return nil, false, nil
}

// call runs a read or create operation and converts its typed result into
// the generic response entry shape.
func (r *Router) call(fn func() (any, error)) (map[string]any, bool, error) {
	entity, err := fn()
	if err != nil {
		return nil, true, err
	}

	result, err := toMap(entity)
	if err != nil {
		return nil, true, err
	}

	return result, true, nil
}

// persist writes the response body to the event store under the message's
// (source, event id) key and fires the optional notifier. Persistence
// failures are logged but do not fail the invocation; the caller still gets
// its synchronous response.
func (r *Router) persist(ctx context.Context, msg types.Message, body types.MessageResponseBody) {
	logger := r.logger.WithFields(map[string]any{
		"event_source": msg.Source,
		"event_id":     msg.EventID,
	})

	if r.store == nil {
		logger.Warn("Callback response requested but no event store is configured")
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		logger.Errorf("Unable to serialize callback response: %v", err)
		return
	}

	event := types.CallbackEvent{
		EventSource: msg.Source,
		EventID:     msg.EventID,
		Data:        string(data),
	}

	if err := r.store.Put(ctx, event, r.opts.callbackTTL); err != nil {
		logger.Errorf("Unable to persist callback response: %v", err)
		return
	}

	if r.opts.notifier == nil {
		return
	}

	if err := r.opts.notifier.Notify(ctx, event); err != nil {
		logger.Errorf("Unable to send callback notification: %v", err)
	}
}

func parseObjectData(data json.RawMessage, out any) error {
	if len(data) == 0 {
		return fmt.Errorf("missing object data for %T", out)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse object data: %w", err)
	}

	return nil
}

func toMap(v any) (map[string]any, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("failed to convert response data: %w", err)
	}

	return m, nil
}
