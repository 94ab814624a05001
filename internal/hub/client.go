package hub

import (
	"errors"
	"net/http"
	"time"

	"healthdash/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var errNotConnected = errors.New("client has no connection")

// Client is one websocket connection.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan Event

	// guarded by Hub.mu
	state        ClientState
	failureCount int
	successCount int
}

func newClient(id string, conn *websocket.Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = 1
	}
	return &Client{
		ID:    id,
		conn:  conn,
		send:  make(chan Event, buffer),
		state: Healthy,
	}
}

// ping writes a control frame; safe to call alongside the write loop.
func (c *Client) ping(timeout time.Duration) error {
	if c.conn == nil {
		return errNotConnected
	}
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(timeout))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request and registers the connection under a
// fresh ID, announced in the WELCOME event.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	id := uuid.NewString()
	c := newClient(id, conn, h.config.ClientBuffer)
	h.register(c)
	h.logger.Infof("websocket client connected: %s", id)

	go h.writePump(c)
	go h.readPump(c)

	welcome := newEvent(EventWelcome, map[string]any{
		"message": "Connected to health dashboard live updates",
	})
	welcome.ClientID = id
	h.deliver(c, welcome)
}

func (h *Hub) readPump(c *Client) {
	defer func() {
		h.unregisterClient(c)
		c.conn.Close()
		h.logger.Infof("websocket client disconnected: %s", c.ID)
	}()

	pongWait := h.config.PongWait
	if pongWait > 0 {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			c.conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
	}

	for {
		var msg Event
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnf("websocket error for %s: %v", c.ID, err)
			}
			return
		}

		switch msg.Type {
		case EventPing:
			pong := newEvent(EventPong, nil)
			pong.ClientID = c.ID
			h.deliver(c, pong)
		default:
			h.logger.Debugf("ignoring %q from %s", msg.Type, c.ID)
		}
	}
}

// deliver queues an event for a single client without blocking.
func (h *Hub) deliver(c *Client, e Event) {
	h.mu.RLock()
	live := h.clients[c.ID] == c
	if live {
		select {
		case c.send <- e:
		default:
			live = false
		}
	}
	h.mu.RUnlock()

	if !live {
		h.metrics.Inc(metrics.WSSendFailuresTotal)
	}
}

func (h *Hub) writePump(c *Client) {
	defer c.conn.Close()

	timeout := h.config.Heartbeat.WriteTimeout
	for msg := range c.send {
		if timeout > 0 {
			c.conn.SetWriteDeadline(time.Now().Add(timeout))
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			h.logger.Debugf("write to %s failed: %v", c.ID, err)
			h.markFailure(c)
			return
		}
	}

	// send was closed by the hub
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
