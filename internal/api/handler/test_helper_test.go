package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mwarren/crmapi/internal/core/repository"
	"github.com/mwarren/crmapi/internal/core/service"
	"github.com/mwarren/crmapi/internal/core/validation"
	"github.com/mwarren/crmapi/internal/infrastructure/sqlite"
)

// stubSyncer satisfies service.ContactSyncer without touching the network.
type stubSyncer struct {
	mu    sync.Mutex
	calls int
}

func (s *stubSyncer) CreateContact(ctx context.Context, email, firstName, lastName, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return true
}

type testEnv struct {
	router *gin.Engine
	repo   repository.ClientRepository
	syncer *stubSyncer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewClientRepository(db)
	syncer := &stubSyncer{}
	svc := service.NewClientService(repo, validation.NewClientValidator(), syncer, zap.NewNop())
	h := NewClientHandler(svc, zap.NewNop())

	router := gin.New()
	clients := router.Group("/clients")
	{
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.POST("", h.CreateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}

	return &testEnv{router: router, repo: repo, syncer: syncer}
}

func (env *testEnv) makeRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) makeRawRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return out
}

// createClient posts a minimal valid client and returns its id.
func (env *testEnv) createClient(t *testing.T, firstName, lastName, email string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/clients", map[string]any{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create fixture client: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse create response: %v", err)
	}
	return resp.ID
}
