package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/sales"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
	"salespulse/pkg/contracts/events"
)

var referenceSeries = domain.RawSeries{100, 150, 90, 90}

func eventOfType(eventType events.EventType) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == eventType })
}

func TestDispatch_RequiresGeneratedData(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})

	requests := []Request{
		StatisticsRequest{},
		HeadRequest{},
		TailRequest{},
		FilterRequest{Threshold: 100},
		CategorizeRequest{},
		ExportRequest{},
	}

	for _, req := range requests {
		t.Run(req.Action(), func(t *testing.T) {
			resp, err := f.svc.Dispatch(context.Background(), f.sessionID, req)
			assert.Nil(t, resp)
			require.ErrorIs(t, err, apierrors.ErrNoData)
			var appErr *apierrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "Please generate sales data first.", appErr.Message)
		})
	}
	f.csv.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestDispatch_Generate(t *testing.T) {
	f := newServiceFixture(t, sales.NewSeededGenerator(7))
	f.publisher.On("Publish", mock.Anything, eventOfType(events.EventSeriesGenerated)).Return(nil).Once()

	resp, err := f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	gen, ok := resp.(api.GenerateResponse)
	require.True(t, ok)
	assert.Equal(t, api.GenerateResponse{Count: 100, Min: 50, Max: 200}, gen)

	sess, err := f.store.Get(f.sessionID)
	require.NoError(t, err)
	require.Len(t, sess.Series, 100)
	for _, v := range sess.Series {
		assert.GreaterOrEqual(t, v, 50)
		assert.LessOrEqual(t, v, 200)
	}
	f.publisher.AssertExpectations(t)
}

func TestDispatch_RegenerateReplacesSeries(t *testing.T) {
	f := newServiceFixture(t, sales.NewSeededGenerator(1))
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	require.NoError(t, err)
	first, _ := f.store.Get(f.sessionID)

	_, err = f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	require.NoError(t, err)
	second, _ := f.store.Get(f.sessionID)

	assert.Len(t, second.Series, 100)
	assert.NotEqual(t, first.Series, second.Series)
}

func TestDispatch_ReferenceScenario(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := f.svc.Dispatch(ctx, f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	t.Run("statistics", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, StatisticsRequest{})
		require.NoError(t, err)
		stats := resp.(api.StatisticsResponse)
		assert.Equal(t, 4, stats.Count)
		assert.InDelta(t, 107.5, stats.Mean, 1e-9)
		assert.InDelta(t, 95.0, stats.Median, 1e-9)
		assert.InDelta(t, 24.8747, stats.StandardDeviation, 1e-3)
	})

	t.Run("head", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, HeadRequest{})
		require.NoError(t, err)
		rows := resp.(api.RecordsResponse)
		assert.Equal(t, "head", rows.View)
		assert.Equal(t, 4, rows.Count)
		assert.Equal(t, 4, rows.Total)
		assert.Equal(t, domain.RecordSet{
			{Day: 1, Sales: 100, GrowthRate: 0},
			{Day: 2, Sales: 150, GrowthRate: 50},
			{Day: 3, Sales: 90, GrowthRate: -40},
			{Day: 4, Sales: 90, GrowthRate: 0},
		}, rows.Records)
	})

	t.Run("tail", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, TailRequest{})
		require.NoError(t, err)
		rows := resp.(api.RecordsResponse)
		assert.Equal(t, "tail", rows.View)
		assert.Equal(t, 4, rows.Count)
		assert.Equal(t, 1, rows.Records[0].Day)
	})

	t.Run("filter", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, FilterRequest{Threshold: 95})
		require.NoError(t, err)
		rows := resp.(api.RecordsResponse)
		require.NotNil(t, rows.Threshold)
		assert.Equal(t, 95.0, *rows.Threshold)
		require.Equal(t, 2, rows.Count)
		assert.Equal(t, 1, rows.Records[0].Day)
		assert.Equal(t, 2, rows.Records[1].Day)
	})

	t.Run("filter above everything", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, FilterRequest{Threshold: 1000})
		require.NoError(t, err)
		rows := resp.(api.RecordsResponse)
		assert.Zero(t, rows.Count)
		assert.NotNil(t, rows.Records)
	})

	t.Run("categorize", func(t *testing.T) {
		resp, err := f.svc.Dispatch(ctx, f.sessionID, CategorizeRequest{})
		require.NoError(t, err)
		labeled := resp.(api.CategorizedResponse)
		assert.Equal(t, 150.0, labeled.Threshold)
		require.Len(t, labeled.Records, 4)
		for _, r := range labeled.Records {
			assert.Equal(t, domain.CategoryLow, r.Category)
		}
	})
}

func TestDispatch_ValidationFailures(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})

	tests := []struct {
		name string
		req  Request
	}{
		{"negative threshold", FilterRequest{Threshold: -1}},
		{"unknown export format", ExportRequest{Format: "pdf"}},
		{"export format is case sensitive", ExportRequest{Format: "CSV"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Dispatch(context.Background(), f.sessionID, tt.req)
			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)
		})
	}
}

func TestDispatch_NilRequest(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, nil)
	assert.ErrorIs(t, err, apierrors.ErrInvalidArgument)
}

func TestDispatch_UnknownSession(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})

	_, err := f.svc.Dispatch(context.Background(), "does-not-exist", GenerateRequest{})
	assert.ErrorIs(t, err, apierrors.ErrNotFound)
}

func TestDispatch_GeneratorErrorKeepsSeries(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{err: apierrors.NewInvalidArgumentError("count must be positive")})

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	assert.ErrorIs(t, err, apierrors.ErrInvalidArgument)

	sess, err := f.store.Get(f.sessionID)
	require.NoError(t, err)
	assert.False(t, sess.HasData())
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatch_DivisionByZero(t *testing.T) {
	series := domain.RawSeries{100, 0, 50}
	f := newServiceFixture(t, stubGenerator{series: series})
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := f.svc.Dispatch(ctx, f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	for _, req := range []Request{HeadRequest{}, TailRequest{}, FilterRequest{}, CategorizeRequest{}, ExportRequest{}} {
		_, err := f.svc.Dispatch(ctx, f.sessionID, req)
		require.ErrorIs(t, err, apierrors.ErrDivisionByZero, req.Action())

		var appErr *apierrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 3, appErr.Context["day"])
	}

	// Statistics do not depend on growth rates
	_, err = f.svc.Dispatch(ctx, f.sessionID, StatisticsRequest{})
	assert.NoError(t, err)

	sess, err := f.store.Get(f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, series, sess.Series)
}

func TestDispatch_Export(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})
	f.publisher.On("Publish", mock.Anything, eventOfType(events.EventSeriesGenerated)).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		data, ok := e.Data.(events.ExportCompletedData)
		return e.Type == events.EventExportCompleted && ok && data.Rows == 4
	})).Return(nil).Once()
	ctx := context.Background()

	_, err := f.svc.Dispatch(ctx, f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	records, err := sales.BuildRecords(referenceSeries)
	require.NoError(t, err)
	f.csv.On("Export", records, "sales_data.csv").Return("/exports/sales_data.csv", nil).Once()

	resp, err := f.svc.Dispatch(ctx, f.sessionID, ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, api.ExportResponse{Path: "/exports/sales_data.csv", Format: "csv", Rows: 4}, resp)

	f.csv.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestDispatch_ExportFormatNotConfigured(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	_, err = f.svc.Dispatch(context.Background(), f.sessionID, ExportRequest{Format: FormatXLSX})
	assert.ErrorIs(t, err, apierrors.ErrInvalidArgument)
}

func TestDispatch_ExportFailure(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})
	f.publisher.On("Publish", mock.Anything, eventOfType(events.EventSeriesGenerated)).Return(nil)
	ctx := context.Background()

	_, err := f.svc.Dispatch(ctx, f.sessionID, GenerateRequest{})
	require.NoError(t, err)

	ioErr := apierrors.NewIOError("failed to write sales_data.csv", errors.New("permission denied"))
	f.csv.On("Export", mock.Anything, "sales_data.csv").Return("", ioErr).Once()

	_, err = f.svc.Dispatch(ctx, f.sessionID, ExportRequest{Format: "csv"})
	assert.ErrorIs(t, err, apierrors.ErrIO)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, eventOfType(events.EventExportCompleted))
}

func TestDispatch_PublishFailureDoesNotFailAction(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("hub stopped"))

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, GenerateRequest{})
	assert.NoError(t, err)

	record, ok := f.logs.Find("failed to publish session event")
	require.True(t, ok)
	assert.Equal(t, "hub stopped", record.Attrs["error"])
	assert.Equal(t, "dashboard_service", record.Attrs["component"])
}

func TestDeleteSession(t *testing.T) {
	f := newServiceFixture(t, stubGenerator{series: referenceSeries})

	require.NoError(t, f.svc.DeleteSession(context.Background(), f.sessionID))
	assert.ErrorIs(t, f.svc.DeleteSession(context.Background(), f.sessionID), apierrors.ErrNotFound)

	_, err := f.svc.Dispatch(context.Background(), f.sessionID, StatisticsRequest{})
	assert.ErrorIs(t, err, apierrors.ErrNotFound)
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		base, format, want string
	}{
		{"sales_data.csv", "csv", "sales_data.csv"},
		{"sales_data.csv", "xlsx", "sales_data.xlsx"},
		{"report", "csv", "report.csv"},
		{"out/SALES.CSV", "csv", "out/SALES.CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"->"+tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, exportFilename(tt.base, tt.format))
		})
	}
}
