package usl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/michael-genson/usl-alexa-skill/types"
)

// Validate issues a lightweight authenticated GET against the validation
// route and reports whether the client's credential is accepted. It returns
// false on any failure and never an error, so callers can use it as a simple
// linked-account check.
func (c *Client) Validate(ctx context.Context) bool {
	_, err := c.request(ctx, http.MethodGet, c.opts.validateRoute, nil, nil)

	return err == nil
}

// PostListItemEvent forwards a household-list event to the USL API's event
// feed. The event timestamp is serialized as ISO-8601 text. Failures are
// propagated unchanged; whether to ignore them is the caller's decision.
func (c *Client) PostListItemEvent(ctx context.Context, event types.ListEvent) error {
	if _, err := c.request(ctx, http.MethodPost, c.opts.itemEventsRoute, nil, event); err != nil {
		return fmt.Errorf("failed to post list item event %s: %w", event.RequestID, err)
	}

	return nil
}

// CreateListItems posts a batch of items for creation. The USL API is
// authoritative for assigning item ids; the response is parsed back into the
// same shape and returned so the caller can correlate created items with
// their host counterparts.
func (c *Client) CreateListItems(ctx context.Context, items types.USLListItems) (types.USLListItems, error) {
	body, err := c.request(ctx, http.MethodPost, c.opts.createListItemsRoute, nil, items)
	if err != nil {
		return types.USLListItems{}, fmt.Errorf("failed to create USL list items: %w", err)
	}

	var created types.USLListItems
	if err := json.Unmarshal(body, &created); err != nil {
		return types.USLListItems{}, fmt.Errorf("failed to parse USL create response: %w", err)
	}

	return created, nil
}
