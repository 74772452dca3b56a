// Package config provides centralized configuration management for the sales
// dashboard. It loads configuration from multiple sources, validates it, and
// resolves the file system paths the application writes to.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later sources winning:
//
//	1. Default values (config.Default)
//	2. A YAML file (config.yaml, configs/config.yaml, or an explicit path)
//	3. Environment variables prefixed with SALES_
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	SALES_SERVER_PORT=8080
//	SALES_LOGGING_LEVEL=debug
//	SALES_DASHBOARD_SEED=42
//	SALES_DASHBOARD_EXPORT_FILE=sales_data.csv
//	SALES_PATHS_EXPORT_DIR=exports
//
// # Path Management
//
// Paths resolves the export and log directories against the working
// directory so that sales_data.csv lands where the operator started the
// process:
//
//	paths, err := config.ResolvePaths(cfg.Paths)
//	csvPath := paths.GetExportPath(cfg.Dashboard.ExportFile)
package config
