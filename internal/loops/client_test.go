package loops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mwarren/crmapi/pkg/config"
)

func testConfig(baseURL string) config.LoopsConfig {
	return config.LoopsConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Enabled:        true,
		DefaultSource:  "CRM API",
		TimeoutSeconds: 5,
	}
}

func TestCreateContact(t *testing.T) {
	var received contactRequest
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contactResponse{Success: true, ID: "contact-1"})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())

	ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42")
	if !ok {
		t.Fatal("expected successful contact creation")
	}

	if gotPath != "/contacts/create" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected authorization header: %s", gotAuth)
	}
	if received.Email != "john@example.com" || received.FirstName != "John" || received.LastName != "Smith" {
		t.Errorf("unexpected contact payload: %+v", received)
	}
	if received.Source != "CRM API" {
		t.Errorf("unexpected source: %s", received.Source)
	}
	if !received.Subscribed {
		t.Error("contacts must be created subscribed")
	}
	if received.UserID != "client-42" {
		t.Errorf("unexpected user id: %s", received.UserID)
	}
}

func TestCreateContactDisabled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Enabled = false
	client := NewClient(cfg, zap.NewNop())

	if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
		t.Error("disabled integration must report false")
	}
	if calls.Load() != 0 {
		t.Error("disabled integration must not make network calls")
	}
}

func TestCreateContactMissingAPIKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""
	client := NewClient(cfg, zap.NewNop())

	if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
		t.Error("missing API key must report false")
	}
	if calls.Load() != 0 {
		t.Error("missing API key must not make network calls")
	}
}

func TestCreateContactFailureStatuses(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(testConfig(server.URL), zap.NewNop())
		if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
			t.Errorf("status %d must report false", status)
		}
		server.Close()
	}
}

func TestCreateContactUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(testConfig(server.URL), zap.NewNop())
	if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
		t.Error("unreachable server must report false")
	}
}

func TestCreateContactTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.TimeoutSeconds = 1
	client := NewClient(cfg, zap.NewNop())

	if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
		t.Error("timed out request must report false")
	}
}

func TestCreateContactMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	if ok := client.CreateContact(context.Background(), "john@example.com", "John", "Smith", "client-42"); ok {
		t.Error("undecodable response must report false")
	}
}
