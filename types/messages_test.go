package types

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestOperation_Valid(t *testing.T) {
	t.Parallel()

	for _, op := range []Operation{OperationCreate, OperationRead, OperationReadAll, OperationUpdate, OperationDelete} {
		if !op.Valid() {
			t.Errorf("expected %s to be valid", op)
		}
	}

	if Operation("upsert").Valid() {
		t.Error("expected unknown operation to be invalid")
	}
}

func TestObjectType_Valid(t *testing.T) {
	t.Parallel()

	if !ObjectTypeList.Valid() || !ObjectTypeListItem.Valid() {
		t.Error("expected known object types to be valid")
	}

	if ObjectType("household").Valid() {
		t.Error("expected unknown object type to be invalid")
	}
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	msg := Message{Source: "Mealie", EventID: "event-1"}
	if err := msg.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := (Message{EventID: "event-1"}).Validate(); err == nil {
		t.Error("expected error for missing source, got nil")
	}

	if err := (Message{Source: "Mealie"}).Validate(); err == nil {
		t.Error("expected error for missing event id, got nil")
	}
}

func TestMessage_ObjectDataStaysRaw(t *testing.T) {
	t.Parallel()

	payload := `{"source":"Mealie","event_id":"event-1","requests":[{"operation":"read","object_type":"list","object_data":{"list_id":"list-1"}}]}`

	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(msg.Requests) != 1 {
		t.Fatalf("expected one request, got %d", len(msg.Requests))
	}
	if string(msg.Requests[0].ObjectData) != `{"list_id":"list-1"}` {
		t.Errorf("expected object data to stay raw, got %s", msg.Requests[0].ObjectData)
	}
}

func TestAsHostError(t *testing.T) {
	t.Parallel()

	hostErr := &HostError{Type: HostErrorConflict, Message: "stale version", StatusCode: 409}
	wrapped := fmt.Errorf("update failed: %w", hostErr)

	got, ok := AsHostError(wrapped)
	if !ok {
		t.Fatal("expected a host error in the chain")
	}
	if got.Type != HostErrorConflict {
		t.Errorf("unexpected type %s", got.Type)
	}

	if _, ok := AsHostError(fmt.Errorf("plain error")); ok {
		t.Error("expected no host error for a plain error")
	}
}
