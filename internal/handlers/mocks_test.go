package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"interviewprep/internal/llm"
	"interviewprep/internal/middleware"
	"interviewprep/internal/models"
	"interviewprep/internal/prompts"
	"interviewprep/internal/repositories"
	"interviewprep/internal/testhelpers"
)

type mockProvider struct {
	mu         sync.Mutex
	calls      int
	generateFn func(ctx context.Context, prompt string, opts llm.GenerationOptions) (string, error)
}

func (m *mockProvider) GenerateContent(ctx context.Context, prompt string, opts llm.GenerationOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt, opts)
	}
	return "Question: What tradeoffs did you weigh?\nAnswer: Explain the alternatives considered.", nil
}

func (m *mockProvider) GetProviderName() string { return "mock" }

var _ llm.Provider = (*mockProvider)(nil)

type testEnv struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	resumes  *repositories.ResumeRepository
	prompts  *prompts.PromptManager
	userID   uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	users := &repositories.UserRepository{DB: db}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to create prompt manager: %v", err)
	}

	user := &models.User{Username: "alice", PasswordHash: "irrelevant"}
	if err := users.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return &testEnv{
		db:       db,
		users:    users,
		sessions: &repositories.SessionRepository{DB: db},
		resumes:  &repositories.ResumeRepository{DB: db},
		prompts:  promptManager,
		userID:   user.ID,
	}
}

func testLogger() *zap.Logger { return zap.NewNop() }

// performJSON runs handler with body validated through the request type's
// middleware, authenticated as userID.
func performJSON[T middleware.Validator](handler http.HandlerFunc, method, target, body string, userID uint) *httptest.ResponseRecorder {
	wrapped := middleware.ValidateRequest[T]()(handler)
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	return rec
}

func performGet(handler http.HandlerFunc, target string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
