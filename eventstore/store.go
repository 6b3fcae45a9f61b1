package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/michael-genson/usl-alexa-skill/types"
)

// ErrNotFound is returned by [Store.Get] when no callback event exists for
// the given key, or when it has already been reclaimed by the store's
// expiration reaper.
var ErrNotFound = errors.New("callback event not found")

// Store persists callback events for later out-of-band retrieval. Records
// are keyed by (event source, event id); a repeated Put for the same key
// overwrites the previous record. Expiration enforcement is delegated to the
// backing store's background reaper, so a Get shortly after the expiration
// timestamp may still return the record.
type Store interface {
	// Put writes event, setting its expiration to now + ttl when ttl is
	// greater than zero.
	Put(ctx context.Context, event types.CallbackEvent, ttl time.Duration) error

	// Get returns the event stored under (source, eventID), or [ErrNotFound].
	Get(ctx context.Context, source, eventID string) (types.CallbackEvent, error)
}
