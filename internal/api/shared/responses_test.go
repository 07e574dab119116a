package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/jobboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"success": true, "count": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"count":2}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Job not found.")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Job not found.","success":false}`, w.Body.String())
}

// capture returns a request whose context logger writes JSON into buf.
func capture(buf *bytes.Buffer) *http.Request {
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job/post", nil)
	return req.WithContext(logger.WithLogger(context.WithValue(req.Context(), TraceIDKey, "trace-123"), l))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error logs at error", http.StatusInternalServerError, nil, "ERROR"},
		{"client error logs at debug", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error logs at warn", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			req := capture(&buf)
			w := httptest.NewRecorder()

			err := errors.New("dial postgres://admin:hunter2@db:5432/jobs failed")
			RespondWithErrorAndLog(w, req, tc.status, "Server error while posting the job", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"message":"Server error while posting the job","success":false}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter2")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "trace-123", entry["trace_id"])
			assert.NotContains(t, entry["error"], "hunter2")
		})
	}
}
