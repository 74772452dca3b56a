package http

import (
	"context"

	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
)

// DashboardServiceInterface defines the dashboard operations the HTTP layer needs
type DashboardServiceInterface interface {
	CreateSession(ctx context.Context) api.SessionResponse
	DeleteSession(ctx context.Context, sessionID string) error
	Dispatch(ctx context.Context, sessionID string, req services.Request) (services.Response, error)
}
