package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/stackit/backend/internal/config"
	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/middleware"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:          9090,
		GinMode:       gin.TestMode,
		CORSOrigins:   []string{"*"},
		DraftTTL:      time.Hour,
		DefaultViewer: "current_user",
		SeedMockData:  true,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := New(cfg, Options{Logger: logging.Discard(), Transport: submission.NewSimulator(0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())
	r := srv.RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "up", body["status"])
	assert.Equal(t, "4", body["questions"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())
	r := srv.RegisterRoutes()

	vote := httptest.NewRequest(http.MethodPost, "/api/questions/1/vote", strings.NewReader(`{"direction":"up"}`))
	vote.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), vote)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `stackit_votes_total{choice="up",target="question"} 1`)
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = []string{"http://localhost:5173"}
	r := newTestServer(t, cfg).RegisterRoutes()

	req := httptest.NewRequest(http.MethodOptions, "/api/questions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnseeded(t *testing.T) {
	cfg := testConfig()
	cfg.SeedMockData = false
	r := newTestServer(t, cfg).RegisterRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
	assert.Contains(t, w.Body.String(), `"questions":[]`)
}

func TestHTTPServer(t *testing.T) {
	hs := newTestServer(t, testConfig()).HTTPServer()
	assert.Equal(t, "0.0.0.0:9090", hs.Addr)
	assert.NotNil(t, hs.Handler)
}

func TestAcceptRequiresTokenWhenSecretSet(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "s3cret"
	r := newTestServer(t, cfg).RegisterRoutes()

	req := httptest.NewRequest(http.MethodPost, "/api/answers/2/accept", nil)
	req.Header.Set(middleware.HeaderViewer, "sarah_dev")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	tok, err := middleware.IssueToken("sarah_dev", cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/answers/2/accept", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accepted":true`)
}
