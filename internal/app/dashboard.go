package app

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/sales"
	"salespulse/internal/services"
)

// NewGenerator returns a generator whose output is fixed by seed, or a
// randomly seeded one when seed is 0.
func NewGenerator(seed uint64) *sales.Generator {
	if seed == 0 {
		return sales.NewRandomGenerator()
	}
	return sales.NewSeededGenerator(seed)
}

// NewExporters returns the export formats keyed by name. Files land in paths.ExportDir.
func NewExporters(paths *config.Paths) map[string]services.RecordExporter {
	csvWriter := exporter.NewCSVWriter(paths)
	return map[string]services.RecordExporter{
		services.FormatCSV:  csvWriter,
		services.FormatXLSX: exporter.NewXLSXWriter(csvWriter),
	}
}

// NewDashboardService assembles the dashboard service shared by the web and
// terminal shells. publisher may be nil.
func NewDashboardService(
	cfg *config.Config,
	paths *config.Paths,
	store services.SessionStore,
	publisher services.EventPublisher,
	tracer trace.Tracer,
	metrics *infrastructure.DashboardMetrics,
	logger *slog.Logger,
) *services.DashboardService {
	return services.NewDashboardService(
		cfg.Dashboard,
		store,
		NewGenerator(cfg.Dashboard.Seed),
		NewExporters(paths),
		publisher,
		middleware.NewValidationMiddleware(logger, nil),
		tracer,
		metrics,
		logger,
	)
}
