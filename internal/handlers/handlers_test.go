package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAuthHandler_RegisterRejectsStaffRoles(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/register", h.Register)

	for _, role := range []string{"admin", "doctor", "secretaria"} {
		w := perform(r, http.MethodPost, "/register", gin.H{
			"email":    "nuevo@turnera.com",
			"password": "123456",
			"role":     role,
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("role %s: expected 403, got %d", role, w.Code)
		}
	}
}

func TestAuthHandler_InvalidBody(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/login", h.Login)

	w := perform(r, http.MethodPost, "/login", gin.H{"email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if decode(t, w)["error_code"] != "invalid_request" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAppointmentHandler_InvalidID(t *testing.T) {
	h := NewAppointmentHandler(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, time.UTC)
	r := gin.New()
	r.GET("/turnos/:id", h.Get)
	r.PATCH("/turnos/:id/confirmar", h.Confirm)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/turnos/abc"},
		{http.MethodGet, "/turnos/0"},
		{http.MethodPatch, "/turnos/-1/confirmar"},
	} {
		w := perform(r, tc.method, tc.path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s: expected 400, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestAppointmentHandler_DateQueryRequired(t *testing.T) {
	h := NewAppointmentHandler(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, time.UTC)
	r := gin.New()
	r.GET("/turnos/fecha", h.ListByDate)

	w := perform(r, http.MethodGet, "/turnos/fecha", nil)
	if w.Code != http.StatusBadRequest || decode(t, w)["error_code"] != "missing_fecha" {
		t.Errorf("expected missing_fecha, got %d %s", w.Code, w.Body.String())
	}

	w = perform(r, http.MethodGet, "/turnos/fecha?fecha=18-10-2025", nil)
	if w.Code != http.StatusBadRequest || decode(t, w)["error_code"] != "invalid_date" {
		t.Errorf("expected invalid_date, got %d %s", w.Code, w.Body.String())
	}
}

func TestLogsHandler_TailAndArchiveDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("{\"msg\":\"a\"}\n{\"msg\":\"b\"}\n{\"msg\":\"c\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewLogsHandler(path, logger.NewArchiver(logger.ArchiveConfig{}), nil)
	r := gin.New()
	r.GET("/logs", h.Tail)
	r.POST("/logs/archive", h.Archive)

	w := perform(r, http.MethodGet, "/logs?limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	data, _ := body["data"].([]any)
	if len(data) != 2 || data[1] != "{\"msg\":\"c\"}" {
		t.Errorf("unexpected tail %v", body)
	}

	w = perform(r, http.MethodPost, "/logs/archive", nil)
	if w.Code != http.StatusBadRequest || decode(t, w)["error_code"] != "log_archive_disabled" {
		t.Errorf("expected log_archive_disabled, got %d %s", w.Code, w.Body.String())
	}
}

func TestHealthHandler_Live(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	r := gin.New()
	r.GET("/health", h.Live)

	w := perform(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Errorf("unexpected %d %s", w.Code, w.Body.String())
	}
}
