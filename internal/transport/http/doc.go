// Package http implements the HTTP and WebSocket transport of the sales
// dashboard. Handlers stay thin: they parse the request, hand a typed
// request to the dashboard service and render the result with go-chi/render.
//
// # Routes
//
//	POST   /api/sessions                          create a session
//	DELETE /api/sessions/{sessionID}              end a session
//	POST   /api/sessions/{sessionID}/generate     regenerate the series
//	GET    /api/sessions/{sessionID}/statistics   mean, median, std deviation
//	GET    /api/sessions/{sessionID}/records/head first rows
//	GET    /api/sessions/{sessionID}/records/tail last rows
//	GET    /api/sessions/{sessionID}/records/filter?threshold=
//	GET    /api/sessions/{sessionID}/records/categories
//	POST   /api/sessions/{sessionID}/export       {"format":"csv"|"xlsx"}
//	GET    /api/health, /api/health/live, /api/health/ready, /api/version
//	GET    /ws?session_id=                        session event stream
//	GET    /metrics                               Prometheus exposition
//
// # Error Handling
//
// Every failure is rendered as RFC 7807 problem details by
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/sales/no-data",
//	    "title": "No Sales Data",
//	    "status": 409,
//	    "detail": "Please generate sales data first.",
//	    "instance": "/api/sessions/.../statistics",
//	    "error_code": "NO_DATA",
//	    "trace_id": "..."
//	}
package http
