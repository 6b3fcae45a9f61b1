package types

import "time"

// ListItemEvent is an inbound Alexa household-list notification, built from
// the request envelope of an ItemsCreated, ItemsUpdated, or ItemsDeleted
// event.
type ListItemEvent struct {
	RequestID   string
	Timestamp   time.Time
	ListID      string
	ListItemIDs []string
}

// ListEvent is the immutable audit record forwarded to the USL API for every
// household-list notification. The timestamp is serialized as ISO-8601 text.
// ListItemIDs is populated only for item-level operations.
type ListEvent struct {
	RequestID   string     `json:"request_id"`
	Timestamp   time.Time  `json:"timestamp"`
	Operation   Operation  `json:"operation"`
	ObjectType  ObjectType `json:"object_type"`
	ListID      string     `json:"list_id"`
	ListItemIDs []string   `json:"list_item_ids,omitempty"`
}

// USLListItem is a shopping-list item in the USL API's schema. ID is empty
// until the external system assigns one.
type USLListItem struct {
	ID     string     `json:"id,omitempty"`
	Value  string     `json:"value"`
	Status ItemStatus `json:"status"`
}

// USLListItems is the batch payload for the USL create-list-items call, and
// the shape of its response.
type USLListItems struct {
	ListID    string        `json:"list_id"`
	ListItems []USLListItem `json:"list_items"`
}

// CallbackEvent is the only record this skill ever persists: a serialized
// message response stored for out-of-band retrieval, keyed by
// (EventSource, EventID). Expires is a UNIX timestamp after which the
// backing store may reclaim the record.
type CallbackEvent struct {
	EventSource string `json:"event_source"`
	EventID     string `json:"event_id"`
	Data        string `json:"data"`
	Expires     int64  `json:"expires,omitempty"`
}
