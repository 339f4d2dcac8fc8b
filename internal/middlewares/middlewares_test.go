package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technotes/backend/internal/logger"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id", func(t *testing.T) {
		var fromContext string
		handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromContext = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		_, err := uuid.Parse(fromContext)
		assert.NoError(t, err)
		assert.Equal(t, fromContext, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		var fromContext string
		handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromContext = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "caller-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "caller-id", fromContext)
		assert.Equal(t, "caller-id", w.Header().Get("X-Request-ID"))
	})
}

func TestLoggerMiddleware_WritesRequestEventLog(t *testing.T) {
	dir := t.TempDir()
	log, _ := zap.NewDevelopment()
	events := logger.NewEventLogger(dir, log)

	handler := LoggerMiddleware(log, events)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/notes?completed=true", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	events.Close()

	data, err := os.ReadFile(filepath.Join(dir, "reqLog.log"))
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	assert.True(t, strings.HasSuffix(line, "GET\t/notes?completed=true\thttp://localhost:3000"), "unexpected line: %q", line)
}

func TestRecoveryMiddleware(t *testing.T) {
	dir := t.TempDir()
	log, _ := zap.NewDevelopment()
	events := logger.NewEventLogger(dir, log)

	handler := RecoveryMiddleware(log, events)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	events.Close()

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())

	data, err := os.ReadFile(filepath.Join(dir, "errLog.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom\tGET\t/notes")
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		expectedHeader string
	}{
		{
			name:           "allowed origin echoed",
			allowedOrigins: []string{"http://localhost:3000"},
			origin:         "http://localhost:3000",
			expectedHeader: "http://localhost:3000",
		},
		{
			name:           "wildcard",
			allowedOrigins: []string{"*"},
			origin:         "http://example.com",
			expectedHeader: "*",
		},
		{
			name:           "origin not allowed",
			allowedOrigins: []string{"http://localhost:3000"},
			origin:         "http://evil.example.com",
			expectedHeader: "",
		},
		{
			name:           "no origin header",
			allowedOrigins: []string{"http://localhost:3000"},
			origin:         "",
			expectedHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.allowedOrigins)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedHeader, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}

	t.Run("preflight answers 204", func(t *testing.T) {
		handler := CORSMiddleware([]string{"*"})(okHandler())

		req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(16)(okHandler())

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"message":"request body too large"}`, w.Body.String())
	})
}
