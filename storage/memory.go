package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gemini-chat/models"
)

// MemStorage keeps conversations and messages in process memory.
// A single RWMutex guards both maps so that composite reads (GetConversation)
// and cascade deletes never observe or leave half-deleted state.
type MemStorage struct {
	mu            sync.RWMutex
	conversations map[string]models.Conversation
	messages      map[string]models.Message
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		conversations: make(map[string]models.Conversation),
		messages:      make(map[string]models.Message),
	}
}

func (s *MemStorage) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemStorage) GetConversation(ctx context.Context, id string) (*models.ConversationWithMessages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}

	return &models.ConversationWithMessages{
		Conversation: conv,
		Messages:     s.messagesOf(id),
	}, nil
}

func (s *MemStorage) CreateConversation(ctx context.Context, title string) (*models.Conversation, error) {
	conv := models.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	return &conv, nil
}

func (s *MemStorage) DeleteConversation(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false, nil
	}

	// Messages go first so the cascade is complete under one critical section.
	for msgID, msg := range s.messages {
		if msg.ConversationID == id {
			delete(s.messages, msgID)
		}
	}
	delete(s.conversations, id)
	return true, nil
}

func (s *MemStorage) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.messagesOf(conversationID), nil
}

func (s *MemStorage) CreateMessage(ctx context.Context, conversationID, role, content string) (*models.Message, error) {
	msg := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	s.messages[msg.ID] = msg
	s.mu.Unlock()

	return &msg, nil
}

// messagesOf collects a conversation's messages in chronological order.
// Callers must hold at least the read lock.
func (s *MemStorage) messagesOf(conversationID string) []models.Message {
	out := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
