package model

import "time"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of an assistant transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage stamps a message with an ID and the given time.
func NewChatMessage(role Role, content string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        NewID(at),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}
