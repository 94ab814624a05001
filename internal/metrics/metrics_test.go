package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_IncAndAdd(t *testing.T) {
	r := NewRegistry()

	r.Inc(ReadingsSubmittedTotal)
	r.Add(ReadingsSubmittedTotal, 2)

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap[string(ReadingsSubmittedTotal)])
}

func TestRegistry_GaugeOperations(t *testing.T) {
	r := NewRegistry()

	r.Set(ReadingsStored, 30)
	assert.Equal(t, int64(30), r.Get(ReadingsStored))

	r.Inc(WSClientsConnected)
	r.Inc(WSClientsConnected)
	r.Dec(WSClientsConnected)
	assert.Equal(t, int64(1), r.Get(WSClientsConnected))

	assert.Equal(t, int64(0), r.Get(HTTPPanicsTotal), "unset metric reads as zero")
}

func TestRegistry_MultipleMetrics(t *testing.T) {
	r := NewRegistry()

	r.Inc(InsightsGeneratedTotal)
	r.Inc(InsightsFallbackTotal)
	r.Add(SessionsExpiredTotal, 5)

	snap := r.Snapshot()

	assert.Equal(t, int64(1), snap[string(InsightsGeneratedTotal)])
	assert.Equal(t, int64(1), snap[string(InsightsFallbackTotal)])
	assert.Equal(t, int64(5), snap[string(SessionsExpiredTotal)])
}

func TestRegistry_ConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	wg := sync.WaitGroup{}

	workers := 50
	increments := 100

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				r.Inc(HTTPRequestsTotal)
			}
		}()
	}

	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, int64(workers*increments), snap[string(HTTPRequestsTotal)])
}

func TestRegistry_SnapshotIsDeepCopy(t *testing.T) {
	r := NewRegistry()

	r.Inc(ReadingsStored)
	snap1 := r.Snapshot()

	snap1[string(ReadingsStored)] = 999

	snap2 := r.Snapshot()

	assert.Equal(t, int64(1), snap2[string(ReadingsStored)],
		"internal state should not be affected by snapshot mutation")
}

func TestRegistry_UnknownMetricHandledGracefully(t *testing.T) {
	r := NewRegistry()

	r.Inc("unknown_metric")

	snap := r.Snapshot()
	assert.Equal(t, int64(1), snap["unknown_metric"])
}

func TestRegistry_SnapshotPrefix(t *testing.T) {
	r := NewRegistry()

	r.Inc(WSBroadcastsTotal)
	r.Inc(WSSendFailuresTotal)
	r.Inc(HTTPRequestsTotal)

	snap := r.SnapshotPrefix("ws_")
	assert.Len(t, snap, 2)
	assert.NotContains(t, snap, string(HTTPRequestsTotal))
}
