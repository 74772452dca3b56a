package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
)

const testSessionID = "7a1c6b1e-3f0d-4f5e-9f0a-2b8c4d6e8f10"

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) CreateSession(ctx context.Context) api.SessionResponse {
	args := m.Called()
	return args.Get(0).(api.SessionResponse)
}

func (m *MockDashboardService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockDashboardService) Dispatch(ctx context.Context, sessionID string, req services.Request) (services.Response, error) {
	args := m.Called(sessionID, req)
	return args.Get(0), args.Error(1)
}

// fixedGenerator always yields the same series
type fixedGenerator struct {
	series domain.RawSeries
}

func (g fixedGenerator) Generate(count, min, max int) (domain.RawSeries, error) {
	return g.series.Clone(), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(discardLogger(), false)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
