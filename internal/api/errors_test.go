package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stackBody struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

func decodeStackBody(t *testing.T, w *httptest.ResponseRecorder) (stackBody, map[string]json.RawMessage) {
	t.Helper()
	var body stackBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return body, raw
}

func TestErrorHandler_NotFound(t *testing.T) {
	t.Parallel()

	for _, production := range []bool{false, true} {
		t.Run(fmt.Sprintf("production=%v", production), func(t *testing.T) {
			t.Parallel()
			h := NewErrorHandler(production, nil)

			req := httptest.NewRequest(http.MethodGet, "/foo/bar?x=1", nil)
			w := httptest.NewRecorder()
			h.NotFound(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
			body, raw := decodeStackBody(t, w)
			assert.Equal(t, "Route not found: /foo/bar?x=1", body.Message)
			assert.Len(t, raw, 2)
			assert.Contains(t, raw, "stack")
			if production {
				assert.Nil(t, body.Stack)
				assert.Equal(t, "null", string(raw["stack"]))
			} else {
				require.NotNil(t, body.Stack)
				assert.Contains(t, *body.Stack, "Route not found: /foo/bar")
				assert.Contains(t, *body.Stack, "goroutine")
			}
		})
	}
}

func TestErrorHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "plain error defaults to 500",
			err:             errors.New("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "boom",
		},
		{
			name:            "unset status defaults to 500",
			err:             NewHTTPError(0, "no status", nil),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "no status",
		},
		{
			name:            "success status becomes 500",
			err:             NewHTTPError(http.StatusOK, "ok is not an error", nil),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "ok is not an error",
		},
		{
			name:            "explicit status is preserved",
			err:             NewHTTPError(http.StatusTeapot, "short and stout", nil),
			expectedStatus:  http.StatusTeapot,
			expectedMessage: "short and stout",
		},
		{
			name:            "wrapped HTTPError keeps its status",
			err:             fmt.Errorf("outer: %w", NewHTTPError(http.StatusBadRequest, "bad input", nil)),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "outer: bad input",
		},
		{
			name:            "nil error",
			err:             nil,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "unknown error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for _, production := range []bool{false, true} {
				w := httptest.NewRecorder()
				NewErrorHandler(production, nil).Handle(w, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

				assert.Equal(t, tc.expectedStatus, w.Code)
				body, _ := decodeStackBody(t, w)
				assert.Equal(t, tc.expectedMessage, body.Message)
				assert.Equal(t, production, body.Stack == nil)
			}
		})
	}
}

func TestErrorHandler_LogsStackEvenInProduction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := NewErrorHandler(true, log)

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/", nil),
		errors.New("dial postgres://admin:hunter2@db/jobs"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["stack"], "goroutine")
	assert.NotContains(t, entry["error"], "hunter2")
}

func TestErrorHandler_Recoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		panicValue      interface{}
		expectedMessage string
	}{
		{"error value", errors.New("nil map write"), "nil map write"},
		{"string value", "something broke", "something broke"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := NewErrorHandler(false, nil)

			r := chi.NewRouter()
			r.Use(h.Recoverer)
			r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
				panic(tc.panicValue)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			body, _ := decodeStackBody(t, w)
			assert.Equal(t, tc.expectedMessage, body.Message)
			require.NotNil(t, body.Stack)
			assert.Contains(t, *body.Stack, "panic")
		})
	}
}

func TestErrorHandler_RecovererReraisesAbort(t *testing.T) {
	t.Parallel()
	h := NewErrorHandler(false, nil)

	handler := h.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := NewHTTPError(http.StatusNotFound, "missing", cause)

	assert.Equal(t, "missing", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Stack(), "Error: missing")
}
