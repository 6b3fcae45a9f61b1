package usl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

// StatusError is returned when the USL API responds with a non-success
// status that is either not retryable or still present after the configured
// number of attempts. It carries the final response so callers can inspect
// what the API actually said.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("USL API returned status %d", e.StatusCode)
}

// Client is a low-level client for the Unified Shopping List API. Every
// request carries the bearer token supplied to [New], and responses with a
// retryable status (429 and 500 by default) are retried with a fixed delay
// up to the configured number of attempts.
//
// A Client is scoped to one linked account's credential: construct one per
// invocation from the account-linking access token rather than sharing a
// singleton across users.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	opts       *Options
}

// New creates a Client for the USL API at baseURL. The base URL is
// normalized to end with a trailing slash and to carry an explicit scheme
// (https is assumed when none is present). An empty base URL is an error.
func New(baseURL, authToken string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.validate(); err != nil {
		return nil, fmt.Errorf("invalid USL client options: %w", err)
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: httpClient,
		opts:       options,
	}, nil
}

// BaseURL returns the normalized base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request performs a single logical API call. The endpoint must be non-empty
// and not the bare root path; a leading slash is stripped before
// concatenation with the base URL. The response body of the final attempt is
// returned on success; on failure the error wraps a [StatusError] when the
// API produced a response at all.
func (c *Client) request(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	if endpoint == "" || endpoint == "/" {
		return nil, errors.New("endpoint cannot be empty")
	}

	endpoint = strings.TrimPrefix(endpoint, "/")

	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var body []byte

	if payload != nil {
		var err error

		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
	}

	for attempt := 1; ; attempt++ {
		responseBody, statusCode, err := c.do(ctx, method, target, body)
		if err != nil {
			return nil, err
		}

		if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
			return responseBody, nil
		}

		if attempt >= c.opts.maxAttempts || !slices.Contains(c.opts.retryStatuses, statusCode) {
			return nil, fmt.Errorf("%s %s failed: %w", method, endpoint, &StatusError{StatusCode: statusCode, Body: responseBody})
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.retryDelay):
		}
	}
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build USL API request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call USL API: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read USL API response: %w", err)
	}

	return responseBody, resp.StatusCode, nil
}
