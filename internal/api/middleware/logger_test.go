package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"success logs at info", http.StatusCreated, "INFO"},
		{"client error logs at warn", http.StatusBadRequest, "WARN"},
		{"server error logs at error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer := new(bytes.Buffer)
			testLogger := slog.New(slog.NewJSONHandler(logBuffer, nil))

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			req := httptest.NewRequest(http.MethodPost, "/customers?x=1", nil)
			req.RemoteAddr = "192.0.2.1:12345"
			req.Header.Set("User-Agent", "TestAgent/1.0")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-123"))

			rr := httptest.NewRecorder()
			StructuredLogger(testLogger)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)

			var logEntry map[string]interface{}
			require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))

			assert.Equal(t, tt.level, logEntry["level"])
			assert.Equal(t, "Served request", logEntry["msg"])
			assert.Equal(t, http.MethodPost, logEntry["method"])
			assert.Equal(t, "/customers", logEntry["path"])
			assert.Equal(t, "192.0.2.1:12345", logEntry["remote_addr"])
			assert.Equal(t, "TestAgent/1.0", logEntry["user_agent"])
			assert.Equal(t, float64(tt.status), logEntry["status"])
			assert.Equal(t, float64(4), logEntry["bytes_written"])
			assert.Equal(t, "req-123", logEntry["request_id"])
			assert.Contains(t, logEntry, "latency_ms")
		})
	}
}
