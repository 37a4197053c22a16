package storage

import (
	"context"
	"errors"

	"gemini-chat/models"
)

// ErrConversationNotFound is returned by GetConversation for an unknown id.
// Expected absences are signaled with this sentinel, never a panic.
var ErrConversationNotFound = errors.New("storage: conversation not found")

// Storage is the single source of truth for conversations and messages.
type Storage interface {
	// ListConversations returns every conversation, most recently created first.
	ListConversations(ctx context.Context) ([]models.Conversation, error)

	// GetConversation returns a conversation with its messages in chronological
	// order, or ErrConversationNotFound.
	GetConversation(ctx context.Context, id string) (*models.ConversationWithMessages, error)

	// CreateConversation stores a new conversation with a fresh id and timestamp.
	CreateConversation(ctx context.Context, title string) (*models.Conversation, error)

	// DeleteConversation removes the conversation and all of its messages.
	// Returns false when no conversation with the id exists.
	DeleteConversation(ctx context.Context, id string) (bool, error)

	// ListMessages returns the conversation's messages in chronological order.
	// An unknown conversation yields an empty slice, not an error.
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)

	// CreateMessage stores a new message with a fresh id and timestamp.
	// The conversation's existence is the caller's responsibility to check.
	CreateMessage(ctx context.Context, conversationID, role, content string) (*models.Message, error)
}
