package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/sales"
	"salespulse/internal/session"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
	"salespulse/pkg/contracts/events"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// SessionStore holds the per-session series
type SessionStore interface {
	Create() session.Session
	Get(id string) (session.Session, error)
	SetSeries(id string, series domain.RawSeries) error
	Delete(id string) error
}

// SeriesGenerator produces raw sales series
type SeriesGenerator interface {
	Generate(count, min, max int) (domain.RawSeries, error)
}

// RecordExporter writes a record set under the export directory and returns the path written
type RecordExporter interface {
	Export(records domain.RecordSet, filename string) (string, error)
}

// EventPublisher delivers session events to subscribers
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// StructValidator validates request structs by their tags
type StructValidator interface {
	ValidateStruct(v interface{}) error
}

// DashboardService dispatches dashboard requests against session state
type DashboardService struct {
	cfg       config.DashboardConfig
	store     SessionStore
	generator SeriesGenerator
	exporters map[string]RecordExporter
	publisher EventPublisher
	validator StructValidator
	tracer    trace.Tracer
	metrics   *infrastructure.DashboardMetrics
	logger    *slog.Logger
}

// NewDashboardService creates a dashboard service. publisher may be nil when
// nobody subscribes to session events.
func NewDashboardService(
	cfg config.DashboardConfig,
	store SessionStore,
	generator SeriesGenerator,
	exporters map[string]RecordExporter,
	publisher EventPublisher,
	validator StructValidator,
	tracer trace.Tracer,
	metrics *infrastructure.DashboardMetrics,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		cfg:       cfg,
		store:     store,
		generator: generator,
		exporters: exporters,
		publisher: publisher,
		validator: validator,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "dashboard_service")),
	}
}

// CreateSession starts an empty session
func (s *DashboardService) CreateSession(ctx context.Context) api.SessionResponse {
	sess := s.store.Create()
	s.metrics.ActiveSessions.Add(ctx, 1)

	s.logger.InfoContext(ctx, "session created", slog.String("session_id", sess.ID))
	return api.SessionResponse{SessionID: sess.ID, CreatedAt: sess.CreatedAt}
}

// DeleteSession ends a session
func (s *DashboardService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(sessionID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session deleted", slog.String("session_id", sessionID))
	return nil
}

// Dispatch runs one request against the session identified by sessionID
func (s *DashboardService) Dispatch(ctx context.Context, sessionID string, req Request) (Response, error) {
	if req == nil {
		return nil, apierrors.NewInvalidArgumentError("request is required")
	}
	action := req.Action()

	ctx, span := s.tracer.Start(ctx, "dashboard."+action,
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("dashboard.action", action),
		))
	defer span.End()

	start := time.Now()
	resp, err := s.dispatch(ctx, sessionID, req)
	duration := time.Since(start)
	s.metrics.RecordAction(ctx, action, duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "dashboard action failed",
			slog.String("action", action),
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.DebugContext(ctx, "dashboard action completed",
		slog.String("action", action),
		slog.String("session_id", sessionID),
		slog.Duration("duration", duration))
	return resp, nil
}

func (s *DashboardService) dispatch(ctx context.Context, sessionID string, req Request) (Response, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if r, ok := req.(GenerateRequest); ok {
		return s.generate(ctx, sessionID, r)
	}

	// Every other view needs data
	if !sess.HasData() {
		return nil, apierrors.NewNoDataError()
	}

	switch r := req.(type) {
	case StatisticsRequest:
		return s.statistics(sess.Series)
	case HeadRequest:
		return s.window(sess.Series, "head", s.cfg.HeadRows, domain.RecordSet.Head)
	case TailRequest:
		return s.window(sess.Series, "tail", s.cfg.TailRows, domain.RecordSet.Tail)
	case FilterRequest:
		return s.filter(sess.Series, r)
	case CategorizeRequest:
		return s.categorize(sess.Series)
	case ExportRequest:
		return s.export(ctx, sessionID, sess.Series, r)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
}

func (s *DashboardService) generate(ctx context.Context, sessionID string, _ GenerateRequest) (Response, error) {
	series, err := s.generator.Generate(s.cfg.SeriesLength, s.cfg.MinSales, s.cfg.MaxSales)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetSeries(sessionID, series); err != nil {
		return nil, err
	}

	s.metrics.SeriesGenerated.Add(ctx, 1)
	resp := api.GenerateResponse{Count: len(series), Min: s.cfg.MinSales, Max: s.cfg.MaxSales}
	s.publish(ctx, events.NewEvent(events.EventSeriesGenerated, sessionID, events.SeriesGeneratedData{
		Count: resp.Count,
		Min:   resp.Min,
		Max:   resp.Max,
	}))
	return resp, nil
}

func (s *DashboardService) statistics(series domain.RawSeries) (Response, error) {
	stats, err := sales.Summarize(series)
	if err != nil {
		return nil, err
	}
	return api.StatisticsResponse{SummaryStatistics: stats, Count: len(series)}, nil
}

func (s *DashboardService) window(series domain.RawSeries, view string, n int, slice func(domain.RecordSet, int) domain.RecordSet) (Response, error) {
	records, err := sales.BuildRecords(series)
	if err != nil {
		return nil, err
	}
	rows := slice(records, n)
	return api.RecordsResponse{View: view, Count: len(rows), Total: len(records), Records: rows}, nil
}

func (s *DashboardService) filter(series domain.RawSeries, req FilterRequest) (Response, error) {
	records, err := sales.BuildRecords(series)
	if err != nil {
		return nil, err
	}
	threshold := req.Threshold
	rows := sales.FilterAbove(records, threshold)
	return api.RecordsResponse{
		View:      "filter",
		Threshold: &threshold,
		Count:     len(rows),
		Total:     len(records),
		Records:   rows,
	}, nil
}

func (s *DashboardService) categorize(series domain.RawSeries) (Response, error) {
	records, err := sales.BuildRecords(series)
	if err != nil {
		return nil, err
	}
	labeled := sales.Annotate(records.Head(s.cfg.HeadRows), s.cfg.CategoryThreshold)
	return api.CategorizedResponse{
		Threshold: s.cfg.CategoryThreshold,
		Count:     len(labeled),
		Records:   labeled,
	}, nil
}

func (s *DashboardService) export(ctx context.Context, sessionID string, series domain.RawSeries, req ExportRequest) (Response, error) {
	format := req.Format
	if format == "" {
		format = FormatCSV
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, apierrors.NewInvalidArgumentError("export format %q is not available", format)
	}

	records, err := sales.BuildRecords(series)
	if err != nil {
		return nil, err
	}

	path, err := exporter.Export(records, exportFilename(s.cfg.ExportFile, format))
	if err != nil {
		return nil, err
	}

	s.metrics.RowsExported.Add(ctx, int64(len(records)), metric.WithAttributes(attribute.String("format", format)))
	s.logger.InfoContext(ctx, "records exported",
		slog.String("session_id", sessionID),
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("rows", len(records)))

	resp := api.ExportResponse{Path: path, Format: format, Rows: len(records)}
	s.publish(ctx, events.NewEvent(events.EventExportCompleted, sessionID, events.ExportCompletedData{
		Path:   resp.Path,
		Format: resp.Format,
		Rows:   resp.Rows,
	}))
	return resp, nil
}

// publish is best effort; a failed notification never fails the action
func (s *DashboardService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish session event",
			slog.String("event", string(event.Type)),
			slog.String("session_id", event.SessionID),
			slog.String("error", err.Error()))
	}
}

// exportFilename swaps the configured file's extension for the requested format
func exportFilename(base, format string) string {
	ext := "." + format
	if strings.EqualFold(filepath.Ext(base), ext) {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
