package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"salespulse/internal/app"
	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/internal/services"
	"salespulse/internal/session"
	"salespulse/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml if present)")
	seed := flag.Uint64("seed", 0, "seed for reproducible sales data (0 uses the configured seed, or a random one)")
	outDir := flag.String("out", "", "export directory (defaults to the configured export directory)")
	format := flag.String("format", services.FormatCSV, "export format: csv or xlsx")
	logLevel := flag.String("log-level", "warn", "log level written to stderr")
	flag.Parse()

	if err := run(*configPath, *seed, *outDir, *format, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "salescli:", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, outDir, format, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Dashboard.Seed = seed
	}
	if outDir != "" {
		cfg.Paths.ExportDir = outDir
	}

	logger := infrastructure.NewLogger(config.LoggingConfig{Level: logLevel}, os.Stderr)

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return err
	}

	// Single-user terminal: no exporters, metrics stay in-process
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		Environment:    cfg.Telemetry.Environment,
		TraceExporter:  "none",
		MetricExporter: "none",
	}, contracts.Version, logger)
	if err != nil {
		return err
	}
	metrics, err := infrastructure.NewDashboardMetrics(providers.Meter)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureTraceID(ctx)

	store := session.NewStore(logger)
	service := app.NewDashboardService(cfg, paths, store, nil, providers.Tracer, metrics, logger)
	sess := service.CreateSession(ctx)

	infrastructure.WithComponent(logger, "salescli").InfoContext(ctx, "terminal session started",
		slog.String("session_id", sess.SessionID),
		slog.String("export_dir", paths.ExportDir))

	sh := newShell(service, sess.SessionID, cfg.Dashboard.FilterThreshold, format, os.Stdin, os.Stdout)
	if err := sh.run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
