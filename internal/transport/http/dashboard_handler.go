package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
)

// DashboardHandler exposes the dashboard menu actions per session
type DashboardHandler struct {
	service          DashboardServiceInterface
	validation       *middleware.ValidationMiddleware
	queries          *middleware.QueryParamValidator
	defaultThreshold float64
	logger           *slog.Logger
	errorHandler     *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler. defaultThreshold is
// used by the filter view when no threshold query parameter is given.
func NewDashboardHandler(
	service DashboardServiceInterface,
	validation *middleware.ValidationMiddleware,
	defaultThreshold float64,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *DashboardHandler {
	return &DashboardHandler{
		service:          service,
		validation:       validation,
		queries:          middleware.NewQueryParamValidator(errorHandler),
		defaultThreshold: defaultThreshold,
		logger:           logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:     errorHandler,
	}
}

// Routes returns the session routes, mounted under /api/sessions
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateSession)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Use(h.SessionCtx)
		r.Delete("/", h.DeleteSession)
		r.Post("/generate", h.Generate)
		r.Get("/statistics", h.Statistics)

		r.Route("/records", func(r chi.Router) {
			r.Get("/head", h.Head)
			r.Get("/tail", h.Tail)
			r.Get("/filter", h.Filter)
			r.Get("/categories", h.Categories)
		})

		r.With(h.validation.ValidateRequest).Post("/export", h.Export)
	})

	return r
}

// SessionCtx rejects session IDs that are not UUIDs
func (h *DashboardHandler) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := uuid.Parse(chi.URLParam(r, "sessionID")); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("sessionID", "Session ID must be a UUID"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateSession handles POST /api/sessions
func (h *DashboardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	resp := h.service.CreateSession(r.Context())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// DeleteSession handles DELETE /api/sessions/{sessionID}
func (h *DashboardHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Generate handles POST /api/sessions/{sessionID}/generate
func (h *DashboardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.GenerateRequest{})
}

// Statistics handles GET /api/sessions/{sessionID}/statistics
func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.StatisticsRequest{})
}

// Head handles GET /api/sessions/{sessionID}/records/head
func (h *DashboardHandler) Head(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.HeadRequest{})
}

// Tail handles GET /api/sessions/{sessionID}/records/tail
func (h *DashboardHandler) Tail(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.TailRequest{})
}

// Filter handles GET /api/sessions/{sessionID}/records/filter?threshold=
func (h *DashboardHandler) Filter(w http.ResponseWriter, r *http.Request) {
	threshold, ok := h.queries.ValidateFloat(w, r, "threshold", 0, h.defaultThreshold)
	if !ok {
		return
	}
	h.dispatch(w, r, services.FilterRequest{Threshold: threshold})
}

// Categories handles GET /api/sessions/{sessionID}/records/categories
func (h *DashboardHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, services.CategorizeRequest{})
}

// Export handles POST /api/sessions/{sessionID}/export. The body is optional.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var body api.ExportRequest
	if r.Body != nil {
		if err := render.DecodeJSON(r.Body, &body); err != nil && !errors.Is(err, io.EOF) {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	h.dispatch(w, r, services.ExportRequest{Format: body.Format})
}

func (h *DashboardHandler) dispatch(w http.ResponseWriter, r *http.Request, req services.Request) {
	resp, err := h.service.Dispatch(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}
