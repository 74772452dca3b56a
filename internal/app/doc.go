// Package app wires the sales dashboard together and manages its lifecycle.
//
// NewApplication builds every component from a config.Config: logging,
// OpenTelemetry, the session store, the WebSocket hub, the dashboard and
// health services, and the chi router. Run listens on the configured port
// and serves until the context is cancelled or SIGINT/SIGTERM arrives:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(context.Background())
//
// The HTTP server, the hub and the idle-session janitor run in one errgroup;
// the first to fail stops the rest. The app never calls os.Exit itself.
package app
