package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/session"
	"salespulse/internal/shared/testutil"
	"salespulse/pkg/contracts/domain"
	"salespulse/pkg/contracts/events"
)

// MockPublisher is a mock for the EventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockExporter is a mock for the RecordExporter interface
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(records domain.RecordSet, filename string) (string, error) {
	args := m.Called(records, filename)
	return args.String(0), args.Error(1)
}

// stubGenerator always returns the same series
type stubGenerator struct {
	series domain.RawSeries
	err    error
}

func (g stubGenerator) Generate(count, min, max int) (domain.RawSeries, error) {
	return g.series.Clone(), g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testDashboardConfig() config.DashboardConfig {
	return config.Default().Dashboard
}

type serviceFixture struct {
	svc       *DashboardService
	store     *session.Store
	publisher *MockPublisher
	csv       *MockExporter
	logs      *testutil.LogCapture
	sessionID string
}

func newServiceFixture(t *testing.T, generator SeriesGenerator) *serviceFixture {
	t.Helper()

	metrics, err := infrastructure.NewDashboardMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	store := session.NewStore(discardLogger())
	publisher := &MockPublisher{}
	csv := &MockExporter{}
	logger, logs := testutil.NewLogCapture(nil)

	svc := NewDashboardService(
		testDashboardConfig(),
		store,
		generator,
		map[string]RecordExporter{FormatCSV: csv},
		publisher,
		middleware.NewValidationMiddleware(discardLogger(), nil),
		tracenoop.NewTracerProvider().Tracer("test"),
		metrics,
		logger,
	)

	created := svc.CreateSession(context.Background())
	return &serviceFixture{
		svc:       svc,
		store:     store,
		publisher: publisher,
		csv:       csv,
		logs:      logs,
		sessionID: created.SessionID,
	}
}
