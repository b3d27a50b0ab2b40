package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentallify/assistant/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileHandler(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "front.html", "front")
	writeFile(t, root, "index.html", "index")
	writeFile(t, root, "css/site.css", "body{}")

	h := FileHandler(root, "front.html", "index.html")
	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/", http.StatusOK, "front"},
		{"/css/site.css", http.StatusOK, "body{}"},
		{"/index.html", http.StatusOK, "index"},
		{"/missing/page", http.StatusOK, "front"},
		{"/css", http.StatusOK, "front"},
		{"/../secret.txt", http.StatusBadRequest, "Invalid path\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestFileHandlerFallsBackToIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "index")

	rec := httptest.NewRecorder()
	FileHandler(root, "front.html", "index.html").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "index", rec.Body.String())
}

func TestFileHandlerNoFrontend(t *testing.T) {
	rec := httptest.NewRecorder()
	FileHandler(t.TempDir(), "front.html", "index.html").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerRoutes(t *testing.T) {
	frontend := t.TempDir()
	models := t.TempDir()
	writeFile(t, frontend, "front.html", "front")
	writeFile(t, models, "web_model.json", `{"classes":[]}`)

	cfg := &config.App{HTTPAddr: ":0", FrontendRoot: frontend, ModelsDir: models}
	srv := NewHTTPServer(cfg, zerolog.Nop(), Dependencies{}, Routes{
		Chat: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	})

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/healthz", http.StatusOK, `{"status":"ok"}`},
		{"/v1/ping", http.StatusOK, `{"pong":true}`},
		{"/models/web_model.json", http.StatusOK, `{"classes":[]}`},
		{"/models/nope.json", http.StatusNotFound, "404 page not found\n"},
		{"/chat", http.StatusTeapot, ""},
		{"/ws/assistant", http.StatusNotImplemented, "assistant transport not configured\n"},
		{"/anything", http.StatusOK, "front"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := &config.App{FrontendRoot: t.TempDir(), ModelsDir: t.TempDir()}
	srv := NewHTTPServer(cfg, zerolog.Nop(), Dependencies{}, Routes{})
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPingReportsUnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	var buf bytes.Buffer
	cfg := &config.App{FrontendRoot: t.TempDir(), ModelsDir: t.TempDir()}
	srv := NewHTTPServer(cfg, zerolog.New(&buf), Dependencies{Redis: rdb}, Routes{})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("X-Request-ID", "ping-1")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, buf.String(), `"message":"dependency ping failed"`)
	assert.Contains(t, buf.String(), `"request_id":"ping-1"`)
}
