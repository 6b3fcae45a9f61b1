package listmanagement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/michael-genson/usl-alexa-skill/types"
)

const listsPath = "/v2/householdlists/"

// Client is a typed facade over the Alexa List Management REST API. It is
// built per invocation from the request envelope's API endpoint and access
// token, which are only valid for the duration of that invocation.
//
// Expected host-side failures (object not found, stale version, throttling)
// are returned as [*types.HostError] values so callers can branch on them
// without treating them as transport faults. Everything else (network
// errors, 5xx responses) is returned as an ordinary wrapped error.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	opts       *Options
}

// New creates a Client for the List Management API at endpoint,
// authenticated with the envelope's API access token.
func New(endpoint, token string, opts ...Option) *Client {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		token:      token,
		httpClient: httpClient,
		opts:       options,
	}
}

// ReadAllLists returns metadata for every list in the customer's household.
func (c *Client) ReadAllLists(ctx context.Context) (*types.AlexaListsMetadata, error) {
	var lists types.AlexaListsMetadata
	if err := c.do(ctx, http.MethodGet, listsPath, nil, &lists); err != nil {
		return nil, err
	}

	return &lists, nil
}

// ReadList returns a full list snapshot including its items. The list state
// defaults to active when not set on the request.
func (c *Client) ReadList(ctx context.Context, req types.ReadList) (*types.AlexaList, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid read list request: %w", err)
	}

	state := req.State
	if state == "" {
		state = types.ListStateActive
	}

	var list types.AlexaList
	if err := c.do(ctx, http.MethodGet, listsPath+req.ListID+"/"+string(state), nil, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// CreateList creates a new list and returns its metadata.
func (c *Client) CreateList(ctx context.Context, req types.CreateList) (*types.AlexaListMetadata, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid create list request: %w", err)
	}

	payload := map[string]any{
		"name":  req.Name,
		"state": stateOrActive(req.State),
	}

	var list types.AlexaListMetadata
	if err := c.do(ctx, http.MethodPost, listsPath, payload, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// UpdateList updates a list's name and state. The request must carry the
// current list version; the host rejects stale versions with a conflict.
func (c *Client) UpdateList(ctx context.Context, req types.UpdateList) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid update list request: %w", err)
	}

	payload := map[string]any{
		"name":    req.Name,
		"state":   stateOrActive(req.State),
		"version": req.Version,
	}

	return c.do(ctx, http.MethodPut, listsPath+req.ListID, payload, nil)
}

// DeleteList deletes a list.
func (c *Client) DeleteList(ctx context.Context, req types.DeleteList) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid delete list request: %w", err)
	}

	return c.do(ctx, http.MethodDelete, listsPath+req.ListID, nil, nil)
}

// ReadListItem returns a single list item.
func (c *Client) ReadListItem(ctx context.Context, req types.ReadListItem) (*types.AlexaListItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid read list item request: %w", err)
	}

	var item types.AlexaListItem
	if err := c.do(ctx, http.MethodGet, listsPath+req.ListID+"/items/"+req.ItemID, nil, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// CreateListItem creates a new item in the given list and returns it,
// including the version assigned by the host.
func (c *Client) CreateListItem(ctx context.Context, req types.CreateListItem) (*types.AlexaListItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid create list item request: %w", err)
	}

	payload := map[string]any{
		"value":  req.Value,
		"status": statusOrActive(req.Status),
	}

	var item types.AlexaListItem
	if err := c.do(ctx, http.MethodPost, listsPath+req.ListID+"/items", payload, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateListItem updates an item's value and status. The request must carry
// the item's current version; the host rejects stale versions with a
// conflict.
func (c *Client) UpdateListItem(ctx context.Context, req types.UpdateListItem) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid update list item request: %w", err)
	}

	payload := map[string]any{
		"value":   req.Value,
		"status":  statusOrActive(req.Status),
		"version": req.Version,
	}

	return c.do(ctx, http.MethodPut, listsPath+req.ListID+"/items/"+req.ItemID, payload, nil)
}

// DeleteListItem deletes an item from a list.
func (c *Client) DeleteListItem(ctx context.Context, req types.DeleteListItem) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid delete list item request: %w", err)
	}

	return c.do(ctx, http.MethodDelete, listsPath+req.ListID+"/items/"+req.ItemID, nil, nil)
}

// do performs one List Management API call and decodes the response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reader io.Reader

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal list management payload: %w", err)
		}

		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build list management request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call list management service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read list management response: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			return nil
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse list management response: %w", err)
		}

		return nil
	}

	if hostErr := decodeHostError(resp.StatusCode, body); hostErr != nil {
		return hostErr
	}

	return fmt.Errorf("list management service returned status %d", resp.StatusCode)
}

// decodeHostError maps expected 4xx responses onto *types.HostError values.
// Statuses outside the expected set return nil so the caller reports them as
// transport-level failures.
func decodeHostError(statusCode int, body []byte) *types.HostError {
	var code string

	switch statusCode {
	case http.StatusBadRequest:
		code = types.HostErrorBadRequest
	case http.StatusUnauthorized:
		code = types.HostErrorUnauthorized
	case http.StatusForbidden:
		code = types.HostErrorForbidden
	case http.StatusNotFound:
		code = types.HostErrorNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		code = types.HostErrorConflict
	case http.StatusTooManyRequests:
		code = types.HostErrorThrottled
	default:
		return nil
	}

	// The service reports a short reason in a Message field; fall back to the
	// raw body when it doesn't parse.
	var parsed struct {
		Message string `json:"Message"`
	}

	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	return &types.HostError{
		Type:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func stateOrActive(state types.ListState) types.ListState {
	if state == "" {
		return types.ListStateActive
	}

	return state
}

func statusOrActive(status types.ItemStatus) types.ItemStatus {
	if status == "" {
		return types.ItemStatusActive
	}

	return status
}