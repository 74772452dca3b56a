package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"salespulse/internal/app"
	"salespulse/internal/config"
	"salespulse/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml if present)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
