package api

import (
	"net/http"
	"time"
)

// Options tune the HTTP surface.
type Options struct {
	// LoadDelay is applied to page data routes.
	LoadDelay   time.Duration
	CORSOrigins string
}

func RegisterRoutes(mux *http.ServeMux, h *Handler, opts Options) http.Handler {
	page := func(fn http.HandlerFunc) http.Handler {
		return DelayMiddleware(opts.LoadDelay)(fn)
	}

	// Readings
	mux.Handle("GET /api/readings", page(h.ListReadings))
	mux.HandleFunc("GET /api/readings/latest", h.LatestReading)
	mux.HandleFunc("POST /api/readings", h.SubmitReading)
	mux.HandleFunc("POST /api/readings/latest/hydration", h.AddHydration)
	mux.HandleFunc("GET /api/goals", h.GetGoals)

	// Page data
	mux.Handle("GET /api/stats/{metric}", page(h.GetStats))
	mux.Handle("GET /api/charts/{metric}", page(h.GetChart))
	mux.Handle("GET /api/reports", page(h.GetReport))
	mux.Handle("GET /api/summary", page(h.GetSummary))
	mux.Handle("GET /api/insights", page(h.GetInsights))

	// Assistant
	mux.HandleFunc("POST /api/assistant/sessions", h.CreateSession)
	mux.HandleFunc("GET /api/assistant/sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /api/assistant/sessions/{id}", h.DeleteSession)
	mux.HandleFunc("POST /api/assistant/sessions/{id}/messages", h.PostMessage)
	mux.HandleFunc("POST /api/assistant/ask", h.Ask)

	// Live updates
	mux.Handle("GET /ws", h.hub.Handler())

	// Observability APIs
	mux.HandleFunc("GET /metrics", h.GetMetrics)
	mux.HandleFunc("GET /health", h.GetHealth)
	// Admin APIs
	mux.HandleFunc("GET /admin/logs", h.GetLogs)

	// Middlewares
	return Chain(
		mux,
		RecoveryMiddleware(h.logger, h.metrics),
		CORSMiddleware(opts.CORSOrigins),
		LoggingMiddleware(h.logger.With("http"), h.metrics),
	)
}
