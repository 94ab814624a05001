package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Readings
	ReadingsStored          MetricKey = "readings_stored"
	ReadingsSubmittedTotal  MetricKey = "readings_submitted_total"
	ReadingsRejectedTotal   MetricKey = "readings_rejected_total"
	ReadingsEvictedTotal    MetricKey = "readings_evicted_total"
	HydrationQuickAddsTotal MetricKey = "hydration_quick_adds_total"

	// Insights
	InsightsGeneratedTotal MetricKey = "insights_generated_total"
	InsightsFallbackTotal  MetricKey = "insights_fallback_total"
	InsightsNoDataTotal    MetricKey = "insights_no_data_total"

	// Assistant
	AssistantSessionsActive MetricKey = "assistant_sessions_active"
	AssistantSessionsTotal  MetricKey = "assistant_sessions_total"
	AssistantMessagesTotal  MetricKey = "assistant_messages_total"
	AssistantBusyTotal      MetricKey = "assistant_busy_total"
	AssistantCancelledTotal MetricKey = "assistant_cancelled_total"
	SessionCleanupRunsTotal MetricKey = "session_cleanup_runs_total"
	SessionsExpiredTotal    MetricKey = "sessions_expired_total"

	// Live updates
	WSClientsConnected     MetricKey = "ws_clients_connected"
	WSClientsEvictedTotal  MetricKey = "ws_clients_evicted_total"
	WSBroadcastsTotal      MetricKey = "ws_broadcasts_total"
	WSSendFailuresTotal    MetricKey = "ws_send_failures_total"
	HeartbeatRunsTotal     MetricKey = "heartbeat_runs_total"
	HeartbeatSuccessTotal  MetricKey = "heartbeat_success_total"
	HeartbeatFailuresTotal MetricKey = "heartbeat_failures_total"

	// HTTP
	HTTPRequestsTotal MetricKey = "http_requests_total"
	HTTPErrorsTotal   MetricKey = "http_errors_total"
	HTTPPanicsTotal   MetricKey = "http_panics_total"
)

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Dec decrements a metric by 1. Used for gauges.
func (r *Registry) Dec(key MetricKey) {
	r.Add(key, -1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	atomic.AddInt64(r.counter(key), delta)
}

// Set overwrites a gauge value.
func (r *Registry) Set(key MetricKey, value int64) {
	atomic.StoreInt64(r.counter(key), value)
}

// Get returns the current value of a single metric.
func (r *Registry) Get(key MetricKey) int64 {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}

func (r *Registry) counter(key MetricKey) *int64 {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()
	if ok {
		return ptr
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		return ptr
	}
	ptr = new(int64)
	r.counters[key] = ptr
	return ptr
}
