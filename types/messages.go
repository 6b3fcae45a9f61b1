package types

import (
	"encoding/json"
	"errors"
)

// Operation identifies a CRUD operation carried by a skill message or list
// event.
type Operation string

// Supported operations.
const (
	OperationCreate  Operation = "create"
	OperationRead    Operation = "read"
	OperationReadAll Operation = "read_all"
	OperationUpdate  Operation = "update"
	OperationDelete  Operation = "delete"
)

// Valid reports whether o is one of the supported operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationRead, OperationReadAll, OperationUpdate, OperationDelete:
		return true
	}

	return false
}

// ObjectType identifies the kind of object a message request targets.
type ObjectType string

// Supported object types.
const (
	ObjectTypeList     ObjectType = "list"
	ObjectTypeListItem ObjectType = "list_item"
)

// Valid reports whether t is one of the supported object types.
func (t ObjectType) Valid() bool {
	return t == ObjectTypeList || t == ObjectTypeListItem
}

// MessageRequest is a single CRUD request inside an inbound skill message.
// ObjectData holds the operation's input object as raw JSON and is parsed
// into the matching typed request by the router. Metadata is opaque to the
// skill and echoed back verbatim on the corresponding response entry.
type MessageRequest struct {
	Operation  Operation       `json:"operation"`
	ObjectType ObjectType      `json:"object_type"`
	ObjectData json.RawMessage `json:"object_data,omitempty"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// Message is an inbound skill-messaging payload: a batch of independent CRUD
// requests from a single external source. When SendCallbackResponse is true
// the composed response body is additionally persisted to the ephemeral
// event store, keyed by (Source, EventID), for later out-of-band retrieval.
type Message struct {
	Source               string           `json:"source"`
	EventID              string           `json:"event_id"`
	Requests             []MessageRequest `json:"requests"`
	Metadata             map[string]any   `json:"metadata,omitempty"`
	SendCallbackResponse bool             `json:"send_callback_response,omitempty"`
}

// Validate checks that the message carries the fields required for routing.
func (m Message) Validate() error {
	if m.Source == "" {
		return errors.New("message source cannot be empty")
	}

	if m.EventID == "" {
		return errors.New("message event id cannot be empty")
	}

	return nil
}

// MessageResponseBody is the uniform result envelope for a processed message.
// Success reflects whether every processed request entry succeeded. Detail is
// set only for batch-level failures. Data holds one entry per processed
// request, in request order, each carrying the original request's metadata.
type MessageResponseBody struct {
	Success bool             `json:"success"`
	Detail  string           `json:"detail,omitempty"`
	Data    []map[string]any `json:"data,omitempty"`
}

// MessageResponse pairs a response body with the message that produced it so
// the external caller can correlate responses without a shared index.
type MessageResponse struct {
	SourceMessage Message             `json:"source_message"`
	Body          MessageResponseBody `json:"body"`
}
