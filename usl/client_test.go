package usl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/michael-genson/usl-alexa-skill/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetryDelay(0)}, opts...)

	client, err := New(server.URL, "test-token", opts...)
	if err != nil {
		t.Fatalf("expected no error creating client, got %v", err)
	}

	return client
}

// ==================== New Tests ====================

func TestNew_EmptyBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New("", "token")
	if err == nil {
		t.Error("expected error for empty base URL, got nil")
	}
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"bare host", "usl.example.com", "https://usl.example.com/"},
		{"explicit scheme", "http://usl.example.com", "http://usl.example.com/"},
		{"trailing slash kept", "https://usl.example.com/api/", "https://usl.example.com/api/"},
		{"path without slash", "https://usl.example.com/api", "https://usl.example.com/api/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(tt.baseURL, "token")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if client.BaseURL() != tt.want {
				t.Errorf("expected base URL %q, got %q", tt.want, client.BaseURL())
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := New("usl.example.com", "token", WithMaxAttempts(0))
	if err == nil {
		t.Error("expected error for invalid options, got nil")
	}
}

// ==================== Request Tests ====================

func TestRequest_SendsAuthHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})

	if _, err := client.request(context.Background(), http.MethodGet, "validate", nil, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
}

func TestRequest_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if _, err := client.request(context.Background(), http.MethodGet, "", nil, nil); err == nil {
		t.Error("expected error for empty endpoint, got nil")
	}

	if _, err := client.request(context.Background(), http.MethodGet, "/", nil, nil); err == nil {
		t.Error("expected error for root endpoint, got nil")
	}
}

func TestRequest_RetriesRetryableStatus(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int64

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	body, err := client.request(context.Background(), http.MethodGet, "validate", nil, nil)
	if err != nil {
		t.Fatalf("expected no error after retries, got %v", err)
	}

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected response body %s", body)
	}
}

func TestRequest_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int64

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.request(context.Background(), http.MethodGet, "validate", nil, nil)
	if err == nil {
		t.Fatal("expected error after exhausting attempts, got nil")
	}

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", statusErr.StatusCode)
	}
}

func TestRequest_DoesNotRetryNonRetryableStatus(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int64

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.request(context.Background(), http.MethodGet, "validate", nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if attempts.Load() != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts.Load())
	}
}

func TestRequest_CustomRetryStatuses(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int64

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, WithRetryStatuses(http.StatusBadGateway), WithMaxAttempts(2))

	_, err := client.request(context.Background(), http.MethodGet, "validate", nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts.Load())
	}
}

func TestRequest_ContextCanceledDuringRetryWait(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, "token", WithRetryDelay(time.Minute))
	if err != nil {
		t.Fatalf("expected no error creating client, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.request(ctx, http.MethodGet, "validate", nil, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

// ==================== Validate Tests ====================

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	var gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	if !client.Validate(context.Background()) {
		t.Error("expected validation to pass")
	}
	if gotPath != "/validate" {
		t.Errorf("expected path /validate, got %s", gotPath)
	}
}

func TestValidate_Unauthorized(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if client.Validate(context.Background()) {
		t.Error("expected validation to fail")
	}
}

// ==================== API Tests ====================

func TestPostListItemEvent_SerializesEvent(t *testing.T) {
	t.Parallel()

	var captured map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.WriteHeader(http.StatusOK)
	})

	event := types.ListEvent{
		RequestID:   "req-1",
		Timestamp:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Operation:   types.OperationCreate,
		ObjectType:  types.ObjectTypeListItem,
		ListID:      "list-1",
		ListItemIDs: []string{"item-1", "item-2"},
	}

	if err := client.PostListItemEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured["request_id"] != "req-1" {
		t.Errorf("expected request id 'req-1', got %v", captured["request_id"])
	}
	if captured["operation"] != "create" {
		t.Errorf("expected operation 'create', got %v", captured["operation"])
	}
	if captured["timestamp"] != "2024-01-15T12:00:00Z" {
		t.Errorf("expected RFC 3339 timestamp, got %v", captured["timestamp"])
	}
}

func TestCreateListItems_ParsesResponse(t *testing.T) {
	t.Parallel()

	var gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"list_id":"list-1","list_items":[{"id":"item-1","value":"apples","status":"active"}]}`))
	})

	created, err := client.CreateListItems(context.Background(), types.USLListItems{
		ListID:    "list-1",
		ListItems: []types.USLListItem{{ID: "item-1", Value: "apples", Status: types.ItemStatusActive}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/list-items" {
		t.Errorf("expected path /list-items, got %s", gotPath)
	}
	if len(created.ListItems) != 1 || created.ListItems[0].ID != "item-1" {
		t.Errorf("unexpected created items %+v", created.ListItems)
	}
}

func TestCreateListItems_BadResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := client.CreateListItems(context.Background(), types.USLListItems{ListID: "list-1"}); err == nil {
		t.Error("expected error for unparsable response, got nil")
	}
}
