package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/michael-genson/usl-alexa-skill/types"
)

// ListAPI is the subset of the List Management facade the translator uses.
type ListAPI interface {
	ReadList(ctx context.Context, req types.ReadList) (*types.AlexaList, error)
	UpdateListItem(ctx context.Context, req types.UpdateListItem) error
}

// USLAPI is the subset of the USL API facade the translator uses.
type USLAPI interface {
	PostListItemEvent(ctx context.Context, event types.ListEvent) error
	CreateListItems(ctx context.Context, items types.USLListItems) (types.USLListItems, error)
}

// Translator converts Alexa household-list notifications into USL syncs and
// reflects the result back into the Alexa list.
//
// A Translator is scoped to one invocation: the list client carries that
// invocation's API token and the USL client carries the linked account's
// credential. Pass a nil USL client when the account is not linked; the
// translator then skips the external sync but still reports the host-side
// list state.
type Translator struct {
	lists  ListAPI
	usl    USLAPI
	logger types.Logger
	opts   *Options
}

// New creates a Translator. usl may be nil when the user has no linked USL
// credential.
func New(lists ListAPI, usl USLAPI, logger types.Logger, opts ...Option) (*Translator, error) {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid translator options: %w", err)
	}

	return &Translator{
		lists:  lists,
		usl:    usl,
		logger: logger.WithField("component", "translator"),
		opts:   options,
	}, nil
}

// HandleItemsCreated processes an ItemsCreated notification: it waits for
// the debounce delay, reads the current list, syncs the still-active items
// named by the event to the USL API, and marks the items the USL confirms
// as completed in the Alexa list.
//
// A nil response with a nil error means the event was dropped on purpose:
// the list read failed, or none of the event's items are still active. The
// host re-fires coalesced events through normal user interaction, so
// dropped events are not retried.
func (t *Translator) HandleItemsCreated(ctx context.Context, event types.ListItemEvent) (*types.MessageResponse, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	logger := t.logger.WithField("request_id", event.RequestID)

	// Let a burst of near-simultaneous notifications settle before reading
	// the list, so one read covers as many of them as possible.
	if err := t.opts.sleep(ctx, t.opts.debounceDelay); err != nil {
		return nil, err
	}

	list, err := t.lists.ReadList(ctx, types.ReadList{ListID: event.ListID})
	if err != nil {
		logger.Errorf("Unable to read list %s, dropping event: %v", event.ListID, err)
		return nil, nil
	}

	items := filterActive(list.Items, event.ListItemIDs)
	if len(items) == 0 {
		logger.Debug("No active items left for this event, dropping")
		return nil, nil
	}

	if t.usl == nil {
		logger.Info("User is not linked to the USL, skipping sync")
		return t.envelope(event, types.OperationCreate, list)
	}

	// The event feed is best-effort audit data; a failure there must not
	// block the item sync.
	if err := t.usl.PostListItemEvent(ctx, listEvent(event, types.OperationCreate)); err != nil {
		logger.Errorf("Unable to post list item event: %v", err)
	}

	batch := types.USLListItems{
		ListID:    event.ListID,
		ListItems: make([]types.USLListItem, 0, len(items)),
	}

	for _, item := range items {
		batch.ListItems = append(batch.ListItems, types.USLListItem{
			ID:     item.ID,
			Value:  item.Value,
			Status: types.ItemStatusActive,
		})
	}

	created, err := t.usl.CreateListItems(ctx, batch)
	if err != nil {
		logger.Errorf("Unable to create USL list items, dropping event: %v", err)
		return nil, nil
	}

	createdIDs := make(map[string]struct{}, len(created.ListItems))
	for _, item := range created.ListItems {
		createdIDs[item.ID] = struct{}{}
	}

	// Mark synced items completed so the user sees the sync happened. A
	// failed update is left for the next read of the list; it must not stop
	// the remaining items.
	for _, item := range items {
		if _, ok := createdIDs[item.ID]; !ok {
			continue
		}

		update := types.UpdateListItem{
			ListID:  event.ListID,
			ItemID:  item.ID,
			Value:   item.Value,
			Status:  types.ItemStatusCompleted,
			Version: item.Version,
		}

		if err := t.lists.UpdateListItem(ctx, update); err != nil {
			logger.Errorf("Unable to mark item %s completed: %v", item.ID, err)
		}
	}

	return t.envelope(event, types.OperationCreate, list)
}

// HandleItemsUpdated forwards an ItemsUpdated notification to the USL event
// feed. Updated items get no sync treatment beyond the audit event.
func (t *Translator) HandleItemsUpdated(ctx context.Context, event types.ListItemEvent) (*types.MessageResponse, error) {
	return t.forward(ctx, event, types.OperationUpdate)
}

// HandleItemsDeleted forwards an ItemsDeleted notification to the USL event
// feed. Deleted items get no sync treatment beyond the audit event.
func (t *Translator) HandleItemsDeleted(ctx context.Context, event types.ListItemEvent) (*types.MessageResponse, error) {
	return t.forward(ctx, event, types.OperationDelete)
}

func (t *Translator) forward(ctx context.Context, event types.ListItemEvent, op types.Operation) (*types.MessageResponse, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if t.usl == nil {
		t.logger.Info("User is not linked to the USL, ignoring event")
		return nil, nil
	}

	if err := t.usl.PostListItemEvent(ctx, listEvent(event, op)); err != nil {
		t.logger.WithField("request_id", event.RequestID).Errorf("Unable to post list item event, dropping: %v", err)
		return nil, nil
	}

	return t.envelope(event, op, nil)
}

// envelope summarizes a handled event, optionally attaching the host list
// snapshot the response describes.
func (t *Translator) envelope(event types.ListItemEvent, op types.Operation, list *types.AlexaList) (*types.MessageResponse, error) {
	body := types.MessageResponseBody{Success: true}

	if list != nil {
		snapshot, err := toMap(list)
		if err != nil {
			return nil, err
		}

		body.Data = []map[string]any{snapshot}
	}

	return &types.MessageResponse{
		SourceMessage: types.Message{
			Source:  "Alexa",
			EventID: event.RequestID,
			Requests: []types.MessageRequest{
				{Operation: op, ObjectType: types.ObjectTypeListItem},
			},
		},
		Body: body,
	}, nil
}

func validateEvent(event types.ListItemEvent) error {
	if event.ListID == "" {
		return errors.New("event list id cannot be empty")
	}

	if len(event.ListItemIDs) == 0 {
		return errors.New("event list item ids cannot be empty")
	}

	return nil
}

// filterActive returns the items whose id is named by the event and whose
// status is still active, preserving list order.
func filterActive(items []types.AlexaListItem, ids []string) []types.AlexaListItem {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var filtered []types.AlexaListItem

	for _, item := range items {
		if _, ok := wanted[item.ID]; !ok {
			continue
		}

		if item.Status != types.ItemStatusActive {
			continue
		}

		filtered = append(filtered, item)
	}

	return filtered
}

func listEvent(event types.ListItemEvent, op types.Operation) types.ListEvent {
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return types.ListEvent{
		RequestID:   event.RequestID,
		Timestamp:   timestamp,
		Operation:   op,
		ObjectType:  types.ObjectTypeListItem,
		ListID:      event.ListID,
		ListItemIDs: event.ListItemIDs,
	}
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
