package models

import "time"

// Message roles. No other values are stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat turn belonging to exactly one conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
