package translator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/michael-genson/usl-alexa-skill/logging"
	"github.com/michael-genson/usl-alexa-skill/types"
)

// mockListAPI is a mock implementation of ListAPI for testing.
type mockListAPI struct {
	readListFunc       func(ctx context.Context, req types.ReadList) (*types.AlexaList, error)
	updateListItemFunc func(ctx context.Context, req types.UpdateListItem) error

	updates []types.UpdateListItem
}

func (m *mockListAPI) ReadList(ctx context.Context, req types.ReadList) (*types.AlexaList, error) {
	if m.readListFunc != nil {
		return m.readListFunc(ctx, req)
	}
	return &types.AlexaList{ListID: req.ListID}, nil
}

func (m *mockListAPI) UpdateListItem(ctx context.Context, req types.UpdateListItem) error {
	m.updates = append(m.updates, req)
	if m.updateListItemFunc != nil {
		return m.updateListItemFunc(ctx, req)
	}
	return nil
}

// mockUSLAPI is a mock implementation of USLAPI for testing.
type mockUSLAPI struct {
	postListItemEventFunc func(ctx context.Context, event types.ListEvent) error
	createListItemsFunc   func(ctx context.Context, items types.USLListItems) (types.USLListItems, error)

	postedEvents []types.ListEvent
	createdItems []types.USLListItems
}

func (m *mockUSLAPI) PostListItemEvent(ctx context.Context, event types.ListEvent) error {
	m.postedEvents = append(m.postedEvents, event)
	if m.postListItemEventFunc != nil {
		return m.postListItemEventFunc(ctx, event)
	}
	return nil
}

func (m *mockUSLAPI) CreateListItems(ctx context.Context, items types.USLListItems) (types.USLListItems, error) {
	m.createdItems = append(m.createdItems, items)
	if m.createListItemsFunc != nil {
		return m.createListItemsFunc(ctx, items)
	}
	return items, nil
}

func newTestTranslator(t *testing.T, lists ListAPI, usl USLAPI, opts ...Option) *Translator {
	t.Helper()

	opts = append([]Option{WithDebounceDelay(0)}, opts...)

	tr, err := New(lists, usl, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("expected no error creating translator, got %v", err)
	}

	return tr
}

func testList() *types.AlexaList {
	return &types.AlexaList{
		ListID:  "list-1",
		Name:    "Alexa shopping list",
		State:   types.ListStateActive,
		Version: 1,
		Items: []types.AlexaListItem{
			{ID: "item-1", Value: "apples", Status: types.ItemStatusActive, Version: 1},
			{ID: "item-2", Value: "bread", Status: types.ItemStatusCompleted, Version: 2},
			{ID: "item-3", Value: "milk", Status: types.ItemStatusActive, Version: 1},
		},
	}
}

func testEvent(itemIDs ...string) types.ListItemEvent {
	return types.ListItemEvent{
		RequestID:   "req-1",
		Timestamp:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		ListID:      "list-1",
		ListItemIDs: itemIDs,
	}
}

// ==================== HandleItemsCreated Tests ====================

func TestHandleItemsCreated_SyncsActiveItems(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	usl := &mockUSLAPI{}
	tr := newTestTranslator(t, lists, usl)

	// item-2 is completed and item-4 is not on the list; neither should sync.
	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1", "item-2", "item-3", "item-4"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(usl.createdItems) != 1 {
		t.Fatalf("expected one batch create, got %d", len(usl.createdItems))
	}

	batch := usl.createdItems[0]
	if batch.ListID != "list-1" {
		t.Errorf("expected list id 'list-1', got %s", batch.ListID)
	}
	if len(batch.ListItems) != 2 {
		t.Fatalf("expected 2 items in batch, got %d", len(batch.ListItems))
	}
	if batch.ListItems[0].ID != "item-1" || batch.ListItems[1].ID != "item-3" {
		t.Errorf("unexpected batch items %+v", batch.ListItems)
	}

	if len(lists.updates) != 2 {
		t.Fatalf("expected 2 item updates, got %d", len(lists.updates))
	}
	for _, update := range lists.updates {
		if update.Status != types.ItemStatusCompleted {
			t.Errorf("expected synced item %s to be marked completed, got %s", update.ItemID, update.Status)
		}
	}

	if response == nil {
		t.Fatal("expected a response, got nil")
	}
	if !response.Body.Success {
		t.Error("expected a successful response")
	}
	if response.SourceMessage.Source != "Alexa" || response.SourceMessage.EventID != "req-1" {
		t.Errorf("unexpected source message %+v", response.SourceMessage)
	}
	if len(response.Body.Data) != 1 {
		t.Errorf("expected a list snapshot in the response, got %v", response.Body.Data)
	}
}

func TestHandleItemsCreated_MarksOnlyConfirmedItems(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	usl := &mockUSLAPI{
		createListItemsFunc: func(_ context.Context, items types.USLListItems) (types.USLListItems, error) {
			// The USL only confirms item-1.
			return types.USLListItems{
				ListID:    items.ListID,
				ListItems: []types.USLListItem{{ID: "item-1", Value: "apples"}},
			}, nil
		},
	}
	tr := newTestTranslator(t, lists, usl)

	if _, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1", "item-3")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(lists.updates) != 1 {
		t.Fatalf("expected 1 item update, got %d", len(lists.updates))
	}
	if lists.updates[0].ItemID != "item-1" {
		t.Errorf("expected only item-1 to be marked, got %s", lists.updates[0].ItemID)
	}
	if lists.updates[0].Version != 1 {
		t.Errorf("expected host version to be carried on the update, got %d", lists.updates[0].Version)
	}
}

func TestHandleItemsCreated_ReadFailureDropsEvent(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return nil, errors.New("service unavailable")
		},
	}
	usl := &mockUSLAPI{}
	tr := newTestTranslator(t, lists, usl)

	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected a silent drop, got error %v", err)
	}
	if response != nil {
		t.Errorf("expected nil response, got %+v", response)
	}
	if len(usl.createdItems) != 0 {
		t.Error("expected no USL calls after a failed list read")
	}
}

func TestHandleItemsCreated_NoActiveItemsDropsEvent(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	usl := &mockUSLAPI{}
	tr := newTestTranslator(t, lists, usl)

	// item-2 is already completed on the host.
	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-2"))
	if err != nil {
		t.Fatalf("expected a silent drop, got error %v", err)
	}
	if response != nil {
		t.Errorf("expected nil response, got %+v", response)
	}
	if len(usl.createdItems) != 0 {
		t.Error("expected no USL calls when nothing is left to sync")
	}
}

func TestHandleItemsCreated_UnlinkedSkipsSync(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	tr := newTestTranslator(t, lists, nil)

	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if response == nil {
		t.Fatal("expected a response for an unlinked user, got nil")
	}
	if len(lists.updates) != 0 {
		t.Error("expected no item updates for an unlinked user")
	}
}

func TestHandleItemsCreated_CreateFailureDropsEvent(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	usl := &mockUSLAPI{
		createListItemsFunc: func(_ context.Context, _ types.USLListItems) (types.USLListItems, error) {
			return types.USLListItems{}, errors.New("USL unavailable")
		},
	}
	tr := newTestTranslator(t, lists, usl)

	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected a silent drop, got error %v", err)
	}
	if response != nil {
		t.Errorf("expected nil response, got %+v", response)
	}
	if len(lists.updates) != 0 {
		t.Error("expected no item updates after a failed batch create")
	}
}

func TestHandleItemsCreated_EventFeedFailureDoesNotBlockSync(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	usl := &mockUSLAPI{
		postListItemEventFunc: func(_ context.Context, _ types.ListEvent) error {
			return errors.New("feed unavailable")
		},
	}
	tr := newTestTranslator(t, lists, usl)

	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response == nil {
		t.Fatal("expected a response, got nil")
	}
	if len(usl.createdItems) != 1 {
		t.Error("expected the item sync to proceed despite the feed failure")
	}
}

func TestHandleItemsCreated_UpdateFailureContinues(t *testing.T) {
	t.Parallel()

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
		updateListItemFunc: func(_ context.Context, req types.UpdateListItem) error {
			if req.ItemID == "item-1" {
				return &types.HostError{Type: types.HostErrorConflict, Message: "stale version"}
			}
			return nil
		},
	}
	usl := &mockUSLAPI{}
	tr := newTestTranslator(t, lists, usl)

	response, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1", "item-3"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response == nil {
		t.Fatal("expected a response, got nil")
	}
	if len(lists.updates) != 2 {
		t.Errorf("expected both updates to be attempted, got %d", len(lists.updates))
	}
}

func TestHandleItemsCreated_WaitsForDebounce(t *testing.T) {
	t.Parallel()

	var slept time.Duration

	lists := &mockListAPI{
		readListFunc: func(_ context.Context, _ types.ReadList) (*types.AlexaList, error) {
			return testList(), nil
		},
	}
	tr := newTestTranslator(t, lists, nil,
		WithDebounceDelay(42*time.Millisecond),
		WithSleepFunc(func(_ context.Context, d time.Duration) error {
			slept = d
			return nil
		}),
	)

	if _, err := tr.HandleItemsCreated(context.Background(), testEvent("item-1")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if slept != 42*time.Millisecond {
		t.Errorf("expected a 42ms debounce wait, got %v", slept)
	}
}

func TestHandleItemsCreated_InvalidEvent(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, &mockListAPI{}, nil)

	if _, err := tr.HandleItemsCreated(context.Background(), types.ListItemEvent{ListID: "list-1"}); err == nil {
		t.Error("expected error for event without item ids, got nil")
	}

	if _, err := tr.HandleItemsCreated(context.Background(), types.ListItemEvent{ListItemIDs: []string{"item-1"}}); err == nil {
		t.Error("expected error for event without list id, got nil")
	}
}

// ==================== Forwarded Event Tests ====================

func TestHandleItemsUpdated_ForwardsToEventFeed(t *testing.T) {
	t.Parallel()

	usl := &mockUSLAPI{}
	tr := newTestTranslator(t, &mockListAPI{}, usl)

	response, err := tr.HandleItemsUpdated(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(usl.postedEvents) != 1 {
		t.Fatalf("expected one posted event, got %d", len(usl.postedEvents))
	}
	if usl.postedEvents[0].Operation != types.OperationUpdate {
		t.Errorf("expected update operation, got %s", usl.postedEvents[0].Operation)
	}

	if response == nil {
		t.Fatal("expected a response, got nil")
	}
	if len(response.Body.Data) != 0 {
		t.Error("expected no snapshot on a forwarded event response")
	}
}

func TestHandleItemsDeleted_UnlinkedIgnoresEvent(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, &mockListAPI{}, nil)

	response, err := tr.HandleItemsDeleted(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if response != nil {
		t.Errorf("expected nil response for an unlinked user, got %+v", response)
	}
}

func TestHandleItemsDeleted_PostFailureDropsEvent(t *testing.T) {
	t.Parallel()

	usl := &mockUSLAPI{
		postListItemEventFunc: func(_ context.Context, _ types.ListEvent) error {
			return errors.New("feed unavailable")
		},
	}
	tr := newTestTranslator(t, &mockListAPI{}, usl)

	response, err := tr.HandleItemsDeleted(context.Background(), testEvent("item-1"))
	if err != nil {
		t.Fatalf("expected a silent drop, got error %v", err)
	}
	if response != nil {
		t.Errorf("expected nil response, got %+v", response)
	}
}
