// Package hub pushes reading changes to connected websocket clients and
// tracks their health.
package hub

import (
	"net/http"
	"sync"

	"healthdash/internal/logs"
	"healthdash/internal/metrics"
)

// ClientState represents the health state of a client.
type ClientState int

const (
	Healthy ClientState = iota
	Unhealthy
)

// Hub manages connected clients and their health state.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	config  Config

	metrics *metrics.Registry
	logger  *logs.Logger
}

// New creates an empty hub.
func New(cfg Config, reg *metrics.Registry, logger *logs.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		config:  cfg,
		metrics: reg,
		logger:  logger,
	}
}

// register adds c. A client with the same ID replaces the old one.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[c.ID]; ok {
		close(old.send)
	}
	h.clients[c.ID] = c
	h.metrics.Set(metrics.WSClientsConnected, int64(len(h.clients)))
}

// Unregister removes the client and stops its write loop.
// Removing an unknown client is a no-op.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

// unregisterClient removes c only if it is still the live client for its ID.
func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.ID] == c {
		h.removeLocked(c.ID)
	}
}

func (h *Hub) removeLocked(id string) bool {
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	delete(h.clients, id)
	close(c.send)
	h.metrics.Set(metrics.WSClientsConnected, int64(len(h.clients)))
	return true
}

// MarkFailure records a failed delivery or heartbeat.
func (h *Hub) MarkFailure(id string) {
	if c, ok := h.client(id); ok {
		h.markFailure(c)
	}
}

// markFailure is MarkFailure for one connection; it does nothing once c
// has been replaced or removed.
func (h *Hub) markFailure(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.ID] != c {
		return
	}
	c.failureCount++
	c.successCount = 0
	if c.failureCount >= h.config.Health.FailureThreshold {
		c.state = Unhealthy
	}
	if h.config.Health.EvictThreshold > 0 && c.failureCount >= h.config.Health.EvictThreshold {
		h.removeLocked(c.ID)
		h.metrics.Inc(metrics.WSClientsEvictedTotal)
		h.logger.Warnf("client %s evicted after %d consecutive failures", c.ID, c.failureCount)
	}
}

// MarkSuccess records a successful heartbeat.
func (h *Hub) MarkSuccess(id string) {
	if c, ok := h.client(id); ok {
		h.markSuccess(c)
	}
}

func (h *Hub) markSuccess(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.ID] != c {
		return
	}
	c.successCount++
	c.failureCount = 0
	if c.successCount >= h.config.Health.SuccessThreshold {
		c.state = Healthy
	}
}

// IsHealthy reports whether id is connected and healthy.
func (h *Hub) IsHealthy(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[id]
	return ok && c.state == Healthy
}

// Clients returns the IDs of connected clients.
func (h *Hub) Clients() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.clients))
	for id := range h.clients {
		out = append(out, id)
	}
	return out
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues an event for every healthy client.
//
// It never blocks: a client whose buffer is full misses the event and
// the miss counts as a failure.
func (h *Hub) Broadcast(t EventType, payload any) {
	event := newEvent(t, payload)

	var missed []*Client

	h.mu.RLock()
	for _, c := range h.clients {
		if c.state != Healthy {
			continue
		}
		select {
		case c.send <- event:
		default:
			missed = append(missed, c)
		}
	}
	h.mu.RUnlock()

	h.metrics.Inc(metrics.WSBroadcastsTotal)

	for _, c := range missed {
		h.metrics.Inc(metrics.WSSendFailuresTotal)
		h.logger.Warnf("client %s buffer full, dropped %s", c.ID, t)
		h.markFailure(c)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id := range h.clients {
		h.removeLocked(id)
	}
}

// client returns the live client for id.
func (h *Hub) client(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

// Handler serves the websocket endpoint.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(h.ServeWS)
}
