package hub

import (
	"context"
	"time"

	"healthdash/internal/metrics"
)

// HeartbeatWorker periodically pings every client
type HeartbeatWorker struct {
	hub    *Hub
	config Config
}

// NewHeartbeatWorker creates a new heartbeat worker
func NewHeartbeatWorker(h *Hub, cfg Config) *HeartbeatWorker {
	return &HeartbeatWorker{
		hub:    h,
		config: cfg,
	}
}

// Start begins the heartbeat loop
// Stops immediately when the ctx is cancelled
func (hw *HeartbeatWorker) Start(ctx context.Context) {
	if hw.config.Heartbeat.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(hw.config.Heartbeat.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			hw.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (hw *HeartbeatWorker) runOnce(ctx context.Context) {
	hw.hub.metrics.Inc(metrics.HeartbeatRunsTotal)

	for _, id := range hw.hub.Clients() {
		if ctx.Err() != nil {
			return
		}

		c, ok := hw.hub.client(id)
		if !ok {
			continue
		}

		if err := c.ping(hw.config.Heartbeat.WriteTimeout); err != nil {
			hw.hub.metrics.Inc(metrics.HeartbeatFailuresTotal)
			hw.hub.markFailure(c)
			continue
		}
		hw.hub.metrics.Inc(metrics.HeartbeatSuccessTotal)
		hw.hub.markSuccess(c)
	}
}
