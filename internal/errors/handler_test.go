package errors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantContains string
	}{
		{"invalid argument", NewInvalidArgumentError("min > max"), http.StatusBadRequest, TypeInvalidArgument},
		{"no data", NewNoDataError(), http.StatusConflict, "Please generate sales data first."},
		{"empty input", NewEmptyInputError("summarize"), http.StatusUnprocessableEntity, TypeEmptyInput},
		{"division by zero", NewDivisionByZeroError(4), http.StatusUnprocessableEntity, `"day":4`},
		{"io failure", NewIOError("write csv", errors.New("denied")), http.StatusInternalServerError, TypeExportFailed},
		{"not found", NewNotFoundError("session"), http.StatusNotFound, "session not found"},
		{"api error", ErrValidation("threshold", "must be >= 0"), http.StatusBadRequest, "threshold"},
		{"rate limited", ErrRateLimitExceeded, http.StatusTooManyRequests, `"error_code":"RATE_LIMIT_EXCEEDED"`},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/sessions/x/statistics", nil)

			newTestHandler().HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantContains)
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	newTestHandler().HandleError(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPut, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method PUT is not allowed")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "kaboom")
}
