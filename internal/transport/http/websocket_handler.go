package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"salespulse/internal/config"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/session"
	ws "salespulse/internal/websocket"
)

// SessionLookup resolves a session ID
type SessionLookup interface {
	Get(id string) (session.Session, error)
}

// WebSocketHandler upgrades GET /ws?session_id= to a session event stream
type WebSocketHandler struct {
	hub          *ws.Hub
	sessions     SessionLookup
	upgrader     websocket.Upgrader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewWebSocketHandler creates a new WebSocket handler. Browsers may only
// connect from allowedOrigins; clients that send no Origin are accepted.
func NewWebSocketHandler(
	hub *ws.Hub,
	sessions SessionLookup,
	cfg config.WebSocketConfig,
	allowedOrigins []string,
	logger *slog.Logger,
	errorHandler *apierrors.ErrorHandler,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(allowedOrigins, origin)
			},
		},
		logger:       logger.With(slog.String("component", "websocket_handler")),
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles the upgrade
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("session_id", "session_id query parameter is required"))
		return
	}
	if _, err := h.sessions.Get(sessionID); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return
	}

	client := ws.ServeWS(h.hub, conn, sessionID, infrastructure.GetTraceID(r.Context()), h.logger)
	h.logger.InfoContext(r.Context(), "websocket client connected",
		slog.String("session_id", sessionID),
		slog.String("client_id", client.ID()),
		slog.String("remote_addr", r.RemoteAddr))
}
