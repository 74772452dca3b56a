// Package api contains the HTTP contract of the dashboard API.
// Version v1 represents the current stable API version.
package api

import (
	"time"

	"salespulse/pkg/contracts/domain"
)

// ExportRequest is the body of POST /api/sessions/{sessionID}/export
type ExportRequest struct {
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// SessionResponse describes a newly created session
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateResponse reports a freshly generated series
type GenerateResponse struct {
	Count int `json:"count"`
	Min   int `json:"min"`
	Max   int `json:"max"`
}

// StatisticsResponse wraps the summary statistics of a series
type StatisticsResponse struct {
	domain.SummaryStatistics
	Count int `json:"count"`
}

// RecordsResponse is a window or filtered subset of the record set
type RecordsResponse struct {
	View      string           `json:"view"`
	Threshold *float64         `json:"threshold,omitempty"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
	Records   domain.RecordSet `json:"records"`
}

// CategorizedResponse is the head of the record set with category labels
type CategorizedResponse struct {
	Threshold float64                    `json:"threshold"`
	Count     int                        `json:"count"`
	Records   []domain.CategorizedRecord `json:"records"`
}

// ExportResponse reports a completed export
type ExportResponse struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}
