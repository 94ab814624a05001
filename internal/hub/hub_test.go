package hub

import (
	"testing"

	"healthdash/internal/logs"
	"healthdash/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(cfg Config) (*Hub, *metrics.Registry) {
	reg := metrics.NewRegistry()
	return New(cfg, reg, logs.NewLogger(50, logs.DEBUG)), reg
}

func TestHubRegisterAndIsHealthy(t *testing.T) {
	h, reg := newTestHub(DefaultConfig())

	h.register(newClient("c1", nil, 4))
	assert.True(t, h.IsHealthy("c1"))
	assert.False(t, h.IsHealthy("c2"))
	assert.Equal(t, int64(1), reg.Get(metrics.WSClientsConnected))
}

func TestHubMarkFailureTransitionsToUnhealthy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 2

	h, _ := newTestHub(cfg)
	h.register(newClient("c1", nil, 4))

	h.MarkFailure("c1")
	assert.True(t, h.IsHealthy("c1"))

	h.MarkFailure("c1")
	assert.False(t, h.IsHealthy("c1"))
	assert.Equal(t, 1, h.Count(), "unhealthy clients stay connected")
}

func TestHubMarkSuccessRecoversClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 1
	cfg.Health.SuccessThreshold = 2

	h, _ := newTestHub(cfg)
	h.register(newClient("c1", nil, 4))

	h.MarkFailure("c1")
	assert.False(t, h.IsHealthy("c1"))

	h.MarkSuccess("c1")
	assert.False(t, h.IsHealthy("c1"))

	h.MarkSuccess("c1")
	assert.True(t, h.IsHealthy("c1"))
}

func TestHubEvictsAfterThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 1
	cfg.Health.EvictThreshold = 2

	h, reg := newTestHub(cfg)
	c := newClient("c1", nil, 4)
	h.register(c)

	h.MarkFailure("c1")
	h.MarkFailure("c1")

	assert.Equal(t, 0, h.Count())
	assert.Equal(t, int64(1), reg.Get(metrics.WSClientsEvictedTotal))

	_, open := <-c.send
	assert.False(t, open, "send channel is closed on eviction")
}

func TestHubCountersResetCorrectly(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())
	h.register(newClient("c1", nil, 4))

	h.MarkSuccess("c1")
	h.MarkFailure("c1")

	c, ok := h.client("c1")
	require.True(t, ok)
	assert.Equal(t, 0, c.successCount)
	assert.Equal(t, 1, c.failureCount)
}

func TestHubUnknownClientNoPanic(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())

	assert.NotPanics(t, func() {
		h.MarkFailure("unknown")
		h.MarkSuccess("unknown")
		h.Unregister("unknown")
	})
}

func TestHubBroadcastSkipsUnhealthyAndNeverBlocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 1
	cfg.Health.EvictThreshold = 0

	h, reg := newTestHub(cfg)
	healthy := newClient("healthy", nil, 1)
	sick := newClient("sick", nil, 1)
	h.register(healthy)
	h.register(sick)
	h.MarkFailure("sick")

	h.Broadcast(EventReadingAdded, map[string]int{"steps": 1})

	require.Len(t, healthy.send, 1)
	assert.Empty(t, sick.send)

	event := <-healthy.send
	assert.Equal(t, EventReadingAdded, event.Type)

	// buffer of one: the second broadcast fills it, the third is dropped
	h.Broadcast(EventHydrationUpdated, nil)
	h.Broadcast(EventHydrationUpdated, nil)

	assert.Equal(t, int64(3), reg.Get(metrics.WSBroadcastsTotal))
	assert.Equal(t, int64(1), reg.Get(metrics.WSSendFailuresTotal))
	assert.False(t, h.IsHealthy("healthy"), "a dropped event counts as a failure")
}

func TestHubReplaceClientWithSameID(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())
	first := newClient("c1", nil, 1)
	second := newClient("c1", nil, 1)

	h.register(first)
	h.register(second)

	_, open := <-first.send
	assert.False(t, open)

	h.unregisterClient(first)
	assert.Equal(t, 1, h.Count(), "stale client cannot remove its replacement")

	h.Close()
	assert.Equal(t, 0, h.Count())
}

func TestHubStaleClientMarksDoNotTouchReplacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 1
	cfg.Health.EvictThreshold = 0

	h, _ := newTestHub(cfg)
	old := newClient("c1", nil, 1)
	h.register(old)
	replacement := newClient("c1", nil, 1)
	h.register(replacement)

	h.markFailure(old)
	assert.True(t, h.IsHealthy("c1"))
	assert.Equal(t, 0, replacement.failureCount)

	h.markFailure(replacement)
	h.markSuccess(old)
	assert.Equal(t, 0, replacement.successCount)
	assert.False(t, h.IsHealthy("c1"))
}
