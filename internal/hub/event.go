package hub

import "time"

// EventType names a live update.
type EventType string

const (
	EventWelcome          EventType = "WELCOME"
	EventReadingAdded     EventType = "READING_ADDED"
	EventHydrationUpdated EventType = "HYDRATION_UPDATED"
	EventPing             EventType = "PING"
	EventPong             EventType = "PONG"
)

// Event is the JSON frame exchanged with websocket clients.
type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

func newEvent(t EventType, payload any) Event {
	return Event{
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}
