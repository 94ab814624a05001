package api

import (
	"net/http"
	"strconv"
	"time"

	"healthdash/internal/assistant"
	"healthdash/internal/form"
	"healthdash/internal/hub"
	"healthdash/internal/insight"
	"healthdash/internal/logs"
	"healthdash/internal/metrics"
	"healthdash/internal/model"
	"healthdash/internal/stats"
	"healthdash/internal/store"
)

// MaxQuickAdd is the largest hydration quick add accepted, in ml.
const MaxQuickAdd = 5000

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	assistant *assistant.Manager
	hub       *hub.Hub
	goals     model.Goals
	metrics   *metrics.Registry
	logger    *logs.Logger
	started   time.Time
	now       func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	store *store.Store,
	assistant *assistant.Manager,
	hub *hub.Hub,
	metrics *metrics.Registry,
	logger *logs.Logger,
) *Handler {
	return &Handler{
		store:     store,
		assistant: assistant,
		hub:       hub,
		goals:     model.DefaultGoals,
		metrics:   metrics,
		logger:    logger,
		started:   time.Now(),
		now:       time.Now,
	}
}

/* ---------------- GET /api/readings ---------------- */

func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, h.store.Recent(limit))
}

/* ---------------- GET /api/readings/latest ---------------- */

func (h *Handler) LatestReading(w http.ResponseWriter, r *http.Request) {
	latest, ok := h.store.Latest()
	if !ok {
		h.writeError(w, http.StatusNotFound, "no readings")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

/* ---------------- POST /api/readings ---------------- */

func (h *Handler) SubmitReading(w http.ResponseWriter, r *http.Request) {
	var sub form.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	reading, err := sub.Build(h.now())
	if err != nil {
		h.metrics.Inc(metrics.ReadingsRejectedTotal)
		h.writeErr(w, err)
		return
	}

	if dropped, evicted := h.store.Prepend(reading); evicted {
		h.logger.Debugf("reading %s dropped from window", dropped.ID)
	}
	h.logger.Infof("reading %s added", reading.ID)
	h.hub.Broadcast(hub.EventReadingAdded, reading)

	writeJSON(w, http.StatusCreated, reading)
}

/* ---------------- POST /api/readings/latest/hydration ---------------- */

type quickAddRequest struct {
	AmountML int `json:"amount_ml"`
}

func (h *Handler) AddHydration(w http.ResponseWriter, r *http.Request) {
	var req quickAddRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.AmountML <= 0 || req.AmountML > MaxQuickAdd {
		h.writeError(w, http.StatusBadRequest, "amount_ml must be between 1 and "+strconv.Itoa(MaxQuickAdd))
		return
	}

	updated, err := h.store.AddHydration(req.AmountML)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.hub.Broadcast(hub.EventHydrationUpdated, updated)

	writeJSON(w, http.StatusOK, updated)
}

/* ---------------- GET /api/goals ---------------- */

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.goals)
}

/* ---------------- GET /api/stats/{metric} ---------------- */

type statsResponse struct {
	stats.Stats
	Status  string `json:"status,omitempty"`
	Insight string `json:"insight"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	m, err := model.ParseMetric(r.PathValue("metric"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	readings := h.store.List()
	s := stats.Compute(m, readings, h.goals)

	resp := statsResponse{
		Stats:   s,
		Insight: insight.MetricInsight(m, readings, h.goals),
	}
	if len(readings) > 0 {
		resp.Status = insight.Status(m, s.Current, h.goals)
	}
	writeJSON(w, http.StatusOK, resp)
}

/* ---------------- GET /api/charts/{metric} ---------------- */

type chartResponse struct {
	Metric model.Metric       `json:"metric"`
	Unit   string             `json:"unit"`
	Points []stats.ChartPoint `json:"points"`
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	m, err := model.ParseMetric(r.PathValue("metric"))
	if err != nil {
		h.writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chartResponse{
		Metric: m,
		Unit:   m.Unit(),
		Points: stats.Series(m, h.store.List()),
	})
}

/* ---------------- GET /api/reports ---------------- */

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	writeJSON(w, http.StatusOK, stats.BuildReport(h.store.Recent(days)))
}

/* ---------------- GET /api/summary ---------------- */

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, insight.Summarize(h.store.List(), h.goals))
}

/* ---------------- GET /api/insights ---------------- */

type insightsResponse struct {
	Metrics map[model.Metric]string `json:"metrics"`
	Overall string                  `json:"overall,omitempty"`
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	readings := h.store.List()

	resp := insightsResponse{Metrics: insight.MetricInsights(readings, h.goals)}
	if len(readings) > 0 {
		resp.Overall = insight.Composite(readings[0])
	}
	writeJSON(w, http.StatusOK, resp)
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if prefix := r.URL.Query().Get("prefix"); prefix != "" {
		writeJSON(w, http.StatusOK, h.metrics.SnapshotPrefix(prefix))
		return
	}
	writeJSON(w, http.StatusOK, h.metrics.Snapshot())
}

/* ---------------- GET /health ---------------- */

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Readings int    `json:"readings"`
	Sessions int    `json:"sessions"`
	Clients  int    `json:"clients"`
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Readings: h.store.Len(),
		Sessions: h.assistant.Count(),
		Clients:  h.hub.Count(),
	})
}

/* ---------------- GET /admin/logs ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := 100
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, h.logger.GetLast(n))
}
