package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	customMiddleware "salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/internal/session"
	handlers "salespulse/internal/transport/http"
	ws "salespulse/internal/websocket"
	"salespulse/pkg/contracts"
)

const AppName = "SalesPulse"

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Paths            *config.Paths
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.DashboardMetrics
	ErrorHandler     *apierrors.ErrorHandler
	Sessions         *session.Store
	WebSocketHub     *ws.Hub
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Router           *chi.Mux
	Server           *http.Server

	ownsLogger bool
	stopOnce   sync.Once
	stopErr    error
}

// Option customizes application construction
type Option func(*Application)

// WithLogger injects a logger instead of initializing the global one
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		a.Logger = logger
	}
}

// NewApplication wires every component from cfg
func NewApplication(cfg *config.Config, opts ...Option) (*Application, error) {
	a := &Application{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		logger, err := infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.Logger = logger
		a.ownsLogger = true
	}

	a.Logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()
	a.Paths = paths

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.OTelProviders = otelProviders

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	metrics, err := infrastructure.NewDashboardMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create dashboard metrics: %w", err)
	}
	a.Metrics = metrics

	hub, err := ws.NewHub(a.Config.WebSocket, a.OTelProviders.Meter, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create websocket hub: %w", err)
	}
	a.WebSocketHub = hub

	// Subscribers of an evicted or deleted session are told and disconnected
	a.Sessions = session.NewStore(a.Logger, session.WithEvictHook(func(id string) {
		a.Metrics.ActiveSessions.Add(context.Background(), -1)
		a.WebSocketHub.CloseSession(id)
	}))

	a.ErrorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Telemetry.Environment == "development")

	a.DashboardService = NewDashboardService(
		a.Config,
		a.Paths,
		a.Sessions,
		a.WebSocketHub,
		a.OTelProviders.Tracer,
		a.Metrics,
		a.Logger,
	)
	a.HealthService = services.NewHealthService(a.Paths.ExportDir, a.Sessions, a.WebSocketHub, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware that never wraps the ResponseWriter, so /ws can hijack
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Handle("/ws", handlers.NewWebSocketHandler(
		a.WebSocketHub,
		a.Sessions,
		a.Config.WebSocket,
		a.Config.Security.AllowedOrigins,
		a.Logger,
		a.ErrorHandler,
	))
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → Security → CORS → RateLimit → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if rl := a.Config.Security.RateLimit; rl.Enabled {
			r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.ErrorHandler, a.Logger).Handler)
		}

		if a.Config.Server.RequestTimeout > 0 {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		}

		validation := customMiddleware.NewValidationMiddleware(a.Logger, a.ErrorHandler)
		dashboard := handlers.NewDashboardHandler(
			a.DashboardService,
			validation,
			a.Config.Dashboard.FilterThreshold,
			a.Logger,
			a.ErrorHandler,
		)
		health := handlers.NewHealthHandler(a.HealthService, a.Logger)

		r.Mount("/api/sessions", dashboard.Routes())
		r.Mount("/api", health.Routes())
	})

	// Set last so every mounted sub-router inherits them
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run listens on the configured port and serves until ctx is cancelled or
// SIGINT/SIGTERM arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the server on ln together with the websocket hub and the
// session janitor. Any of them failing stops the others; the application is
// stopped before Serve returns.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.WebSocketHub.Run(gctx)
	})

	if d := a.Config.Dashboard; d.SessionIdleTTL > 0 && d.SweepInterval > 0 {
		g.Go(func() error {
			return a.Sessions.Run(gctx, d.SweepInterval, d.SessionIdleTTL)
		})
	}

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Application started",
			slog.String("name", AppName),
			slog.String("version", contracts.Version),
			slog.String("address", ln.Addr().String()),
			slog.String("export_dir", a.Paths.ExportDir))

		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutdown requested")
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application. Only the first call has an effect.
func (a *Application) Stop(ctx context.Context) error {
	a.stopOnce.Do(func() {
		a.stopErr = a.stop(ctx)
	})
	return a.stopErr
}

func (a *Application) stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete",
		slog.Int("sessions", a.Sessions.Len()))

	if a.ownsLogger {
		if err := infrastructure.CloseLogFile(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}
	return nil
}
