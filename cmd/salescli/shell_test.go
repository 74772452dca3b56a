package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salespulse/internal/app"
	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/internal/session"
	"salespulse/pkg/contracts/domain"
)

type fixedGenerator struct {
	series domain.RawSeries
}

func (g fixedGenerator) Generate(count, min, max int) (domain.RawSeries, error) {
	return g.series.Clone(), nil
}

// runShell feeds input to a shell over a [100, 150, 90, 90] series and
// returns everything it printed.
func runShell(t *testing.T, exportDir, format, input string) string {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	metrics, err := infrastructure.NewDashboardMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	service := services.NewDashboardService(
		config.Default().Dashboard,
		session.NewStore(logger),
		fixedGenerator{series: domain.RawSeries{100, 150, 90, 90}},
		app.NewExporters(config.ResolvePathsFrom(exportDir, config.PathsConfig{})),
		nil,
		middleware.NewValidationMiddleware(logger, nil),
		tracenoop.NewTracerProvider().Tracer("test"),
		metrics,
		logger,
	)
	sess := service.CreateSession(context.Background())

	var out bytes.Buffer
	sh := newShell(service, sess.SessionID, 100, format, strings.NewReader(input), &out)
	require.NoError(t, sh.run(context.Background()))
	return out.String()
}

func TestShell_FullMenu(t *testing.T) {
	dir := t.TempDir()
	// statistics before generating, generate, statistics, head, tail,
	// filter above 95, categories, export, exit
	out := runShell(t, dir, "csv", "2\n1\n2\n3\n4\n5\n95\n6\n7\n0\n")

	assert.Contains(t, out, "Sales Data Analysis Dashboard")
	assert.Contains(t, out, "7) Save Data to CSV")
	assert.Contains(t, out, "Please generate sales data first.")
	assert.Contains(t, out, "Sales data has been generated.")
	assert.Contains(t, out, "Statistical Analysis")
	assert.Contains(t, out, "107.50")
	assert.Contains(t, out, "95.00")
	assert.Contains(t, out, "24.87")
	assert.Contains(t, out, "Last 4 Days of Sales Data")
	assert.Contains(t, out, "Sales Above 95 Units")
	assert.Contains(t, out, "-40.00")
	assert.Contains(t, out, "Sales Data with Categories")
	assert.Contains(t, out, "Low")
	assert.NotContains(t, out, "High")

	path := filepath.Join(dir, "sales_data.csv")
	assert.Contains(t, out, "Data saved to '"+path+"'.")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Day,Sales,Sales Growth Rate (%)\n1,100,0.0\n"))
	assert.True(t, strings.HasSuffix(out, "Goodbye.\n"))
}

func TestShell_FilterThreshold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"default threshold", "1\n5\n\n0\n", "Sales Above 100 Units"},
		{"negative threshold", "1\n5\n-5\n0\n", "Invalid input: threshold must be at least 0"},
		{"non numeric threshold", "1\n5\nlots\n0\n", `Invalid threshold "lots"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runShell(t, t.TempDir(), "csv", tt.input)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestShell_ExportFormats(t *testing.T) {
	dir := t.TempDir()
	out := runShell(t, dir, "xlsx", "1\n7\n0\n")
	assert.Contains(t, out, "Data saved to '"+filepath.Join(dir, "sales_data.xlsx")+"'.")

	out = runShell(t, dir, "pdf", "1\n7\n0\n")
	assert.Contains(t, out, "Invalid input: format must be one of: csv, xlsx")
}

func TestShell_UnknownOptionAndEOF(t *testing.T) {
	out := runShell(t, t.TempDir(), "csv", "9\n")
	assert.Contains(t, out, `Unknown option "9".`)
	assert.NotContains(t, out, "Goodbye.")
}

func TestShell_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	sh := newShell(nil, "unused", 100, "csv", strings.NewReader("1\n"), &out)
	assert.ErrorIs(t, sh.run(ctx), context.Canceled)
}
