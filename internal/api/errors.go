package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/jobboard-api/internal/api/shared"
	"github.com/phrazzld/jobboard-api/internal/platform/logger"
	"github.com/phrazzld/jobboard-api/internal/redact"
)

// HTTPError is an error carrying the HTTP status it should be answered with.
// A zero Status means none was chosen; ErrorHandler answers those with 500.
type HTTPError struct {
	Status  int
	Message string
	Err     error
	stack   string
}

// NewHTTPError creates an HTTPError and captures the current goroutine's stack.
func NewHTTPError(status int, message string, err error) *HTTPError {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     err,
		stack:   captureStack(message),
	}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Stack returns the trace captured when the error was created.
func (e *HTTPError) Stack() string {
	return e.stack
}

func captureStack(message string) string {
	return "Error: " + message + "\n" + string(debug.Stack())
}

// errorStackResponse is the body written by the terminal formatter.
// Stack is null in production.
type errorStackResponse struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

// ErrorHandler is the terminal error sink for the router: it answers
// unmatched routes, errors handed to it by middleware, and recovered panics.
type ErrorHandler struct {
	production bool
	logger     *slog.Logger
}

// NewErrorHandler creates an ErrorHandler. In production, stack traces are
// logged but never written to responses. If logger is nil, slog.Default() is used.
func NewErrorHandler(production bool, logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		production: production,
		logger:     logger.With("component", "error_handler"),
	}
}

// NotFound answers a request that matched no route with 404.
// The message names the path as requested, query string included.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r, NewHTTPError(http.StatusNotFound, "Route not found: "+r.URL.RequestURI(), nil))
}

// Handle writes err as a {message, stack} response.
// The status comes from an *HTTPError in err's chain; when there is none, or
// it is unset or 200, the response is 500.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	status := http.StatusInternalServerError
	message := err.Error()
	var stack string

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status != 0 && httpErr.Status != http.StatusOK {
			status = httpErr.Status
		}
		stack = httpErr.Stack()
	} else {
		stack = captureStack(message)
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Error("request failed",
		slog.Int("status_code", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.String("error", redact.Error(err)),
		slog.String("stack", redact.String(stack)))

	resp := errorStackResponse{Message: message}
	if !h.production {
		resp.Stack = &stack
	}
	shared.RespondWithJSON(w, r, status, resp)
}

// Recoverer converts a panic in a downstream handler into a 500 answered by Handle.
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func (h *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			h.Handle(w, r, &HTTPError{
				Status:  http.StatusInternalServerError,
				Message: err.Error(),
				Err:     err,
				stack:   captureStack(err.Error()),
			})
		}()

		next.ServeHTTP(w, r)
	})
}
