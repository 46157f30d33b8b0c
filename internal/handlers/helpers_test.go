package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stillpoint/practice-api/internal/handlers"
	"github.com/stillpoint/practice-api/internal/services"
	"github.com/stillpoint/practice-api/internal/store"
	"github.com/stillpoint/practice-api/internal/utils"
)

const testSecret = "test-secret"

// setup builds a router over a fresh seeded mock store. Question generation
// is pinned so runs are reproducible.
func setup(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore(1, store.DefaultWorkbookCount, store.DefaultAppointmentCount)
	logger := zap.NewNop()
	h := handlers.NewHandler(
		st,
		services.NewNotificationService("", logger),
		services.NewSanitizer(),
		logger,
		testSecret,
		"",
	)
	return handlers.NewRouter(h, handlers.RouterOptions{}), st
}

func adminToken(t *testing.T) string { return token(t, "1", "admin") }
func userToken(t *testing.T) string  { return token(t, "2", "user") }

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(userID, role, testSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

// do performs a request against the router; body may be nil.
func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, code, w.Body.String())
	}
}
