package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/events"
)

const (
	defaultPongWait   = 60 * time.Second
	defaultPingPeriod = (defaultPongWait * 9) / 10
	sendBufferSize    = 64
)

type outbound struct {
	sessionID string
	payload   []byte
}

// Hub fans session events out to the WebSocket clients subscribed to that session.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Clients grouped by session ID
	sessions map[string]map[*Client]struct{}

	register     chan *Client
	unregister   chan *Client
	publish      chan outbound
	closeSession chan string

	mu      sync.RWMutex
	logger  *slog.Logger
	metrics *hubMetrics

	pingPeriod time.Duration
	pongWait   time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new Hub instance with dependency injection
func NewHub(cfg config.WebSocketConfig, meter metric.Meter, logger *slog.Logger) (*Hub, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	metrics, err := newHubMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create websocket metrics: %w", err)
	}

	h := &Hub{
		sessions:     make(map[string]map[*Client]struct{}),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		publish:      make(chan outbound, 256),
		closeSession: make(chan string, 16),
		logger:       logger.With(slog.String("component", "websocket.hub")),
		metrics:      metrics,
		pingPeriod:   cfg.PingPeriod,
		pongWait:     cfg.PongWait,
		done:         make(chan struct{}),
	}
	if h.pongWait <= 0 {
		h.pongWait = defaultPongWait
	}
	if h.pingPeriod <= 0 || h.pingPeriod >= h.pongWait {
		h.pingPeriod = (h.pongWait * 9) / 10
	}
	return h, nil
}

// Run processes registrations and broadcasts until ctx is cancelled.
// On exit every client is disconnected.
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Hub shutting down")
			return nil

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client, "client disconnected")

		case sessionID := <-h.closeSession:
			h.closeSessionClients(sessionID)

		case msg := <-h.publish:
			h.deliver(msg)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.sessions[client.sessionID] = clients
	}
	clients[client] = struct{}{}
	count := len(clients)
	h.mu.Unlock()

	ctx := infrastructure.WithTraceID(context.Background(), client.traceID)
	h.metrics.connections.Add(ctx, 1)
	h.metrics.activeClients.Add(ctx, 1)

	h.logger.InfoContext(ctx, "Client registered",
		slog.String("client_id", client.id),
		slog.String("session_id", client.sessionID),
		slog.String("remote_addr", client.remoteAddr),
		slog.Int("session_clients", count))

	welcome := events.NewEvent(events.EventConnected, client.sessionID, map[string]string{
		"status":    "connected",
		"client_id": client.id,
	})
	welcome.TraceID = client.traceID
	if payload, err := json.Marshal(welcome); err == nil {
		select {
		case client.send <- payload:
		default:
			h.logger.WarnContext(ctx, "Failed to send connection message - client buffer full",
				slog.String("client_id", client.id))
		}
	}
}

// closeSessionClients sends a final session:closed event and disconnects the
// session's clients. The event is queued before the send channels close.
func (h *Hub) closeSessionClients(sessionID string) {
	if payload, err := json.Marshal(events.NewEvent(events.EventSessionClosed, sessionID, nil)); err == nil {
		h.deliver(outbound{sessionID: sessionID, payload: payload})
	}

	h.mu.RLock()
	clients := h.snapshot(sessionID)
	h.mu.RUnlock()
	for _, client := range clients {
		h.removeClient(client, "session closed")
	}
}

// removeClient must only be called from the Run goroutine
func (h *Hub) removeClient(client *Client, reason string) {
	h.mu.Lock()
	clients, ok := h.sessions[client.sessionID]
	if ok {
		if _, ok = clients[client]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}
			close(client.send)
		}
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	ctx := infrastructure.WithTraceID(context.Background(), client.traceID)
	h.metrics.activeClients.Add(ctx, -1)
	h.logger.InfoContext(ctx, "Client unregistered",
		slog.String("client_id", client.id),
		slog.String("session_id", client.sessionID),
		slog.String("reason", reason),
		slog.Duration("connection_duration", time.Since(client.connectedAt)))
}

func (h *Hub) deliver(msg outbound) {
	h.mu.RLock()
	clients := h.snapshot(msg.sessionID)
	h.mu.RUnlock()

	ctx := context.Background()
	for _, client := range clients {
		select {
		case client.send <- msg.payload:
			h.metrics.messagesSent.Add(ctx, 1)
		default:
			h.metrics.messagesDropped.Add(ctx, 1)
			h.removeClient(client, "send buffer full")
		}
	}

	h.logger.Debug("Delivered session event",
		slog.String("session_id", msg.sessionID),
		slog.Int("client_count", len(clients)),
		slog.Int("message_size", len(msg.payload)))
}

// snapshot copies the clients of a session; callers hold h.mu
func (h *Hub) snapshot(sessionID string) []*Client {
	clients := make([]*Client, 0, len(h.sessions[sessionID]))
	for client := range h.sessions[sessionID] {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()
		for sessionID, clients := range h.sessions {
			for client := range clients {
				close(client.send)
			}
			delete(h.sessions, sessionID)
		}
	})
}

// Register adds a client to the hub. After shutdown the client is closed immediately.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues event for every client subscribed to the event's session
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	if event.TraceID == "" {
		event.TraceID = infrastructure.GetTraceID(ctx)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	select {
	case h.publish <- outbound{sessionID: event.SessionID, payload: payload}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CloseSession notifies and disconnects every client of sessionID
func (h *Hub) CloseSession(sessionID string) {
	select {
	case h.closeSession <- sessionID:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.sessions {
		total += len(clients)
	}
	return total
}

// SessionClientCount returns the number of clients subscribed to sessionID
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}
