package models

import "time"

// Conversation represents a titled container of chat messages.
// Created once, never mutated; deleting it cascades to its messages.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationWithMessages is the read-side composite of a conversation and its
// messages in chronological order. Materialized on read, not stored.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}
