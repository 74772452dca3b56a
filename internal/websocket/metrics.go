package websocket

import (
	"go.opentelemetry.io/otel/metric"
)

// hubMetrics holds the OpenTelemetry instruments of the hub
type hubMetrics struct {
	connections     metric.Int64Counter
	activeClients   metric.Int64UpDownCounter
	messagesSent    metric.Int64Counter
	messagesDropped metric.Int64Counter
}

func newHubMetrics(meter metric.Meter) (*hubMetrics, error) {
	m := &hubMetrics{}
	var err error

	if m.connections, err = meter.Int64Counter(
		"websocket_connections_total",
		metric.WithDescription("Total number of WebSocket connections"),
	); err != nil {
		return nil, err
	}
	if m.activeClients, err = meter.Int64UpDownCounter(
		"websocket_active_clients",
		metric.WithDescription("Number of connected WebSocket clients"),
	); err != nil {
		return nil, err
	}
	if m.messagesSent, err = meter.Int64Counter(
		"websocket_messages_sent_total",
		metric.WithDescription("Total number of messages queued to clients"),
	); err != nil {
		return nil, err
	}
	if m.messagesDropped, err = meter.Int64Counter(
		"websocket_messages_dropped_total",
		metric.WithDescription("Messages dropped because a client buffer was full"),
	); err != nil {
		return nil, err
	}
	return m, nil
}
