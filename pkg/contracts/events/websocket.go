// Package events contains the event contracts pushed to WebSocket subscribers
// of a dashboard session.
package events

import "time"

// EventType identifies a session event
type EventType string

const (
	EventConnected       EventType = "connection"
	EventSeriesGenerated EventType = "series:generated"
	EventExportCompleted EventType = "export:completed"
	EventSessionClosed   EventType = "session:closed"
)

// Event is the envelope of every message sent to a session's subscribers
type Event struct {
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// SeriesGeneratedData is the payload of EventSeriesGenerated
type SeriesGeneratedData struct {
	Count int `json:"count"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}

// ExportCompletedData is the payload of EventExportCompleted
type ExportCompletedData struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// NewEvent stamps an event with the current time
func NewEvent(eventType EventType, sessionID string, data interface{}) Event {
	return Event{
		Type:      eventType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
