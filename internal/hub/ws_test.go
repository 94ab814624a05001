package hub

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthdash/internal/metrics"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e Event
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestServeWSWelcomeAndBroadcast(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")

	welcome := readEvent(t, conn)
	assert.Equal(t, EventWelcome, welcome.Type)
	assert.NotEmpty(t, welcome.ClientID)

	assert.Eventually(t, func() bool { return h.IsHealthy(welcome.ClientID) }, time.Second, 5*time.Millisecond)

	h.Broadcast(EventReadingAdded, map[string]int{"steps": 4200})

	event := readEvent(t, conn)
	assert.Equal(t, EventReadingAdded, event.Type)
	payload, ok := event.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4200), payload["steps"])
}

func TestServeWSPingPong(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	readEvent(t, conn)

	require.NoError(t, conn.WriteJSON(Event{Type: EventPing}))

	pong := readEvent(t, conn)
	assert.Equal(t, EventPong, pong.Type)
	assert.NotEmpty(t, pong.ClientID)
}

func TestServeWSDisconnectUnregisters(t *testing.T) {
	h, reg := newTestHub(DefaultConfig())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	readEvent(t, conn)
	conn.Close()

	assert.Eventually(t, func() bool {
		return h.Count() == 0 && reg.Get(metrics.WSClientsConnected) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeWSIgnoresRequestedID(t *testing.T) {
	h, _ := newTestHub(DefaultConfig())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	first := dial(t, srv, "")
	firstID := readEvent(t, first).ClientID

	second := dial(t, srv, "?clientId="+firstID)
	secondID := readEvent(t, second).ClientID

	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, 2, h.Count())

	h.Broadcast(EventReadingAdded, nil)
	assert.Equal(t, EventReadingAdded, readEvent(t, first).Type, "the first connection is still served")
}

func TestHeartbeatWorker_RunOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.FailureThreshold = 1
	cfg.Health.EvictThreshold = 0

	h, reg := newTestHub(cfg)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv, "")
	live := readEvent(t, conn).ClientID
	h.register(newClient("detached", nil, 1))

	worker := NewHeartbeatWorker(h, cfg)
	worker.runOnce(context.Background())

	assert.Equal(t, int64(1), reg.Get(metrics.HeartbeatRunsTotal))
	assert.Equal(t, int64(1), reg.Get(metrics.HeartbeatSuccessTotal))
	assert.Equal(t, int64(1), reg.Get(metrics.HeartbeatFailuresTotal))
	assert.True(t, h.IsHealthy(live))
	assert.False(t, h.IsHealthy("detached"))
}

func TestHeartbeatWorker_StopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Heartbeat.Interval = 5 * time.Millisecond

	h, reg := newTestHub(cfg)
	worker := NewHeartbeatWorker(h, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return reg.Get(metrics.HeartbeatRunsTotal) >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("heartbeat worker did not stop")
	}
}
