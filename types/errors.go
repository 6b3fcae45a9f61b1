package types

import (
	"errors"
	"fmt"
)

// Host error codes normalized from List Management API responses.
const (
	HostErrorBadRequest   = "BAD_REQUEST"
	HostErrorUnauthorized = "UNAUTHORIZED"
	HostErrorForbidden    = "FORBIDDEN"
	HostErrorNotFound     = "OBJECT_NOT_FOUND"
	HostErrorConflict     = "CONFLICT"
	HostErrorThrottled    = "THROTTLED"
)

// HostError is an expected host-side failure (object not found, stale
// version, throttled) returned as a value by the List Management facade.
// The message router treats a HostError as a per-entry degradation and keeps
// processing sibling requests; every other error class aborts the batch.
type HostError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *HostError) Error() string {
	return fmt.Sprintf("list management service error %s: %s", e.Type, e.Message)
}

// AsHostError unwraps err into a *HostError if one is present in its chain.
func AsHostError(err error) (*HostError, bool) {
	var hostErr *HostError
	if errors.As(err, &hostErr) {
		return hostErr, true
	}

	return nil, false
}
