package ttl

import (
	"context"
	"time"

	"healthdash/internal/logs"
	"healthdash/internal/metrics"
)

// Expirer is anything holding entries that can go stale.
// This keeps the cleaner decoupled from the concrete owner.
type Expirer interface {
	RemoveExpired() int
}

// Cleaner periodically removes expired entries, such as idle assistant sessions.
type Cleaner struct {
	target   Expirer
	interval time.Duration
	logger   *logs.Logger
	metrics  *metrics.Registry
}

// NewCleaner creates a new instance of Cleaner
func NewCleaner(
	target Expirer,
	interval time.Duration,
	logger *logs.Logger,
	reg *metrics.Registry,
) *Cleaner {
	return &Cleaner{
		target:   target,
		interval: interval,
		logger:   logger,
		metrics:  reg,
	}
}

// Start runs the cleanup loop until the context is cancelled.
// It blocks and should typically be run in a separate goroutine.
func (c *Cleaner) Start(ctx context.Context) {
	if c.interval <= 0 {
		c.logger.Warn("session cleaner disabled: non-positive interval")
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.runOnce()
		case <-ctx.Done():
			c.logger.Debug("session cleaner stopped")
			return
		}
	}
}

// runOnce performs a single cleanup cycle
func (c *Cleaner) runOnce() {
	c.metrics.Inc(metrics.SessionCleanupRunsTotal)

	removed := c.target.RemoveExpired()
	if removed > 0 {
		c.logger.Infof("session cleaner removed %d idle sessions", removed)
	}
}
