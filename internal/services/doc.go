// Package services implements the dashboard's application layer.
//
// DashboardService owns the menu actions of a dashboard session. Every action
// is a Request value from a closed set, dispatched to the sales pipeline
// against the session's current series:
//
//	resp, err := svc.Dispatch(ctx, sessionID, services.FilterRequest{Threshold: 100})
//
// Requests other than GenerateRequest fail with a NoData error until the
// session has a series. Failures never modify the stored series.
//
// HealthService reports liveness and readiness for the HTTP health endpoints.
package services
